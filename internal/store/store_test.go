package store

import (
	"context"
	"testing"
	"time"

	"aoa/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return New(gdb), mock
}

func TestVoteUpsert(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO "votes" .* ON CONFLICT \("post_id","voter_id"\) DO UPDATE SET "choice"="excluded"."choice","updated_at"="excluded"."updated_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Votes.Upsert(context.Background(), &models.Vote{PostID: "p1", VoterID: "u1", Choice: models.ChoiceRight})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteFindNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "votes" WHERE post_id = \$1 AND voter_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "voter_id", "choice"}))

	_, err := s.Votes.Find(context.Background(), "p1", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteListByPosts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "votes" WHERE post_id IN \(\$1,\$2\)`).
		WithArgs("p1", "p2").
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "voter_id", "choice"}).
			AddRow("p1", "u1", 0).
			AddRow("p2", "u1", 1))

	votes, err := s.Votes.ListByPosts(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, models.ChoiceRight, votes[1].Choice)
}

func TestReactionUpsertAndDelete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO "comment_reactions" .* ON CONFLICT \("comment_id","user_id"\) DO UPDATE SET "value"="excluded"."value"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "comment_reactions" WHERE comment_id = \$1 AND user_id = \$2`).
		WithArgs("c1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, s.Reactions.Upsert(ctx, &models.CommentReaction{CommentID: "c1", UserID: "u1", Value: models.ReactionUp}))
	require.NoError(t, s.Reactions.Delete(ctx, "c1", "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminExists(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "admin_users" WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := s.Admins.Exists(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProfilesFindByUserIDs(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id IN \(\$1,\$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"anon_number", "user_id"}).
			AddRow(7, "u1").
			AddRow(9, "u2"))

	got, err := s.Profiles.FindByUserIDs(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(7), got[0].AnonNumber)
}

func TestAdsListLive(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "ads" WHERE is_active = \$1 AND starts_at <= \$2 AND ends_at >= \$3 ORDER BY tier ASC,created_at ASC`).
		WithArgs(true, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "placement", "tier", "is_active", "title"}).
			AddRow("a1", "left", 1, true, "First").
			AddRow("a2", "left", 3, true, "Second"))

	ads, err := s.Ads.ListLive(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, models.PlacementLeft, ads[0].Placement)
	assert.Equal(t, "Second", ads[1].Title)
}

func TestAdsSetActiveMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "ads" SET "is_active"=\$1 WHERE id = \$2`).
		WithArgs(false, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Ads.SetActive(context.Background(), "missing", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportsDelete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "reports" WHERE id = \$1`).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Reports.Delete(context.Background(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostsRecent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "posts" ORDER BY created_at DESC LIMIT \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "prompt", "left_label", "right_label"}).
			AddRow("p1", "Tabs or spaces?", "Tabs", "Spaces"))

	posts, err := s.Posts.Recent(context.Background(), 40)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Tabs", posts[0].LeftLabel)
}
