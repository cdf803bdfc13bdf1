package services

import (
	"context"

	"aoa/internal/models"

	"go.uber.org/zap"
)

// PostCard is a prompt as the feed and the post page show it.
type PostCard struct {
	Post       models.Post
	OwnerLabel string
	Tally      Tally
	MyChoice   *int
	MediaURL   string
}

func (c PostCard) Voted(side int) bool {
	return c.MyChoice != nil && *c.MyChoice == side
}

type ArenaPage struct {
	Identity  string
	Feed      []FeedItem
	LeftRail  []AdCard
	RightRail []AdCard
}

type PostPage struct {
	Identity  string
	Card      PostCard
	Thread    *Thread
	LeftRail  []AdCard
	RightRail []AdCard
}

// ArenaService assembles the read side of the app from the other services.
type ArenaService struct {
	posts    *PostService
	votes    *VoteService
	comments *CommentService
	identity *IdentityService
	ads      *AdService
	media    *MediaURLs
	log      *zap.SugaredLogger
}

func NewArenaService(posts *PostService, votes *VoteService, comments *CommentService, identity *IdentityService, ads *AdService, media *MediaURLs, log *zap.SugaredLogger) *ArenaService {
	return &ArenaService{
		posts:    posts,
		votes:    votes,
		comments: comments,
		identity: identity,
		ads:      ads,
		media:    media,
		log:      log,
	}
}

// ViewerLabel is the "User #N" shown in the viewer's own header.
func (s *ArenaService) ViewerLabel(ctx context.Context, viewerID string) string {
	n, err := s.identity.AnonNumber(ctx, viewerID)
	if err != nil {
		s.log.Warnw("viewer anon number", "user_id", viewerID, "error", err)
	}
	return AnonLabel(n)
}

func (s *ArenaService) Arena(ctx context.Context, viewerID string) (*ArenaPage, error) {
	posts, err := s.posts.Feed(ctx, FeedLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(posts))
	owners := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		owners = append(owners, p.OwnerID)
	}

	tallies, mine, err := s.votes.ForPosts(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}
	labels, err := s.identity.AnonNumbers(ctx, owners)
	if err != nil {
		return nil, err
	}

	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		card := PostCard{
			Post:       p,
			OwnerLabel: LabelFor(labels, p.OwnerID),
			Tally:      tallies[p.ID],
			MediaURL:   s.media.URLFor(ctx, p.MediaPath),
		}
		if c, ok := mine[p.ID]; ok {
			card.MyChoice = &c
		}
		cards = append(cards, card)
	}

	left, right, feed := s.rails(ctx)
	return &ArenaPage{
		Identity:  s.ViewerLabel(ctx, viewerID),
		Feed:      InterleaveFeed(cards, feed, FeedSponsoredAfter),
		LeftRail:  left,
		RightRail: right,
	}, nil
}

func (s *ArenaService) Post(ctx context.Context, postID, viewerID string) (*PostPage, error) {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	tally, err := s.votes.Tally(ctx, postID)
	if err != nil {
		return nil, err
	}
	my, err := s.votes.MyChoice(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	owner, err := s.identity.AnonNumber(ctx, post.OwnerID)
	if err != nil {
		return nil, err
	}
	thread, err := s.comments.Thread(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	left, right, _ := s.rails(ctx)
	return &PostPage{
		Identity: s.ViewerLabel(ctx, viewerID),
		Card: PostCard{
			Post:       *post,
			OwnerLabel: AnonLabel(owner),
			Tally:      tally,
			MyChoice:   my,
			MediaURL:   s.media.URLFor(ctx, post.MediaPath),
		},
		Thread:    thread,
		LeftRail:  left,
		RightRail: right,
	}, nil
}

// rails never fails the page: without ads the page still renders.
func (s *ArenaService) rails(ctx context.Context) (left, right, feed []AdCard) {
	slots, err := s.ads.Slots(ctx)
	if err != nil {
		s.log.Warnw("load ad slots", "error", err)
		return nil, nil, nil
	}
	return s.cards(ctx, slots.Left), s.cards(ctx, slots.Right), s.cards(ctx, slots.Feed)
}

func (s *ArenaService) cards(ctx context.Context, ads []models.Ad) []AdCard {
	out := make([]AdCard, 0, len(ads))
	for _, ad := range ads {
		out = append(out, AdCard{Ad: ad, MediaURL: s.media.URLFor(ctx, ad.MediaPath)})
	}
	return out
}
