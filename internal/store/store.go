// Package store holds the gorm-backed repositories, one per table.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Store bundles every repository over one connection.
type Store struct {
	Accounts  *AccountRepo
	Profiles  *ProfileRepo
	Admins    *AdminRepo
	Posts     *PostRepo
	Votes     *VoteRepo
	Comments  *CommentRepo
	Reactions *ReactionRepo
	Reports   *ReportRepo
	Ads       *AdRepo
}

func New(db *gorm.DB) *Store {
	return &Store{
		Accounts:  &AccountRepo{db: db},
		Profiles:  &ProfileRepo{db: db},
		Admins:    &AdminRepo{db: db},
		Posts:     &PostRepo{db: db},
		Votes:     &VoteRepo{db: db},
		Comments:  &CommentRepo{db: db},
		Reactions: &ReactionRepo{db: db},
		Reports:   &ReportRepo{db: db},
		Ads:       &AdRepo{db: db},
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
