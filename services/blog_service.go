package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akinalp/bloglist/database"
	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/pkg/cache"
	"github.com/akinalp/bloglist/pkg/listhelper"
	"github.com/akinalp/bloglist/pkg/logger"
	"github.com/akinalp/bloglist/pkg/validate"
	"github.com/akinalp/bloglist/repository"
	"github.com/akinalp/bloglist/ws"
)

// statsKey is the single cache slot holding the aggregate over all blogs.
const statsKey = "all"

// StatsCache memoizes the blog aggregates.
type StatsCache = cache.TTLCache[string, models.BlogStats]

// BlogService holds the blog business rules.
//
// Create and Delete need a user; Update deliberately does not.
// Every write drops the cached aggregates and is pushed to live viewers.
type BlogService interface {
	List(ctx context.Context) ([]models.Blog, error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	Create(ctx context.Context, user *models.User, req *models.CreateBlogRequest) (*models.Blog, error)
	Update(ctx context.Context, id string, req *models.UpdateBlogRequest) (*models.Blog, error)
	Delete(ctx context.Context, user *models.User, id string) error
	// Stats returns the list aggregates over every stored blog.
	Stats(ctx context.Context) (*models.BlogStats, error)
}

type blogService struct {
	db       *sql.DB
	blogRepo repository.BlogRepository
	stats    *StatsCache
	hub      ws.EventPublisher
	log      zerolog.Logger

	// statsMu orders cache fills against invalidation. statsGen counts
	// writes; an aggregate computed under an older generation is not stored.
	statsMu  sync.Mutex
	statsGen uint64
}

// NewBlogService creates a BlogService.
// db is used for transactions. stats and hub may be nil to disable caching
// and live updates.
func NewBlogService(
	db *sql.DB,
	blogRepo repository.BlogRepository,
	stats *StatsCache,
	hub ws.EventPublisher,
	log zerolog.Logger,
) BlogService {
	return &blogService{
		db:       db,
		blogRepo: blogRepo,
		stats:    stats,
		hub:      hub,
		log:      log,
	}
}

func (s *blogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.blogRepo.GetAll(ctx)
}

func (s *blogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, id)
}

// Create stores a new blog owned by user.
//
// Order matters to clients:
// 1. title and url present, otherwise 400 even for anonymous callers
// 2. a user, otherwise 401
// 3. field validation (lengths, non-negative likes)
func (s *blogService) Create(ctx context.Context, user *models.User, req *models.CreateBlogRequest) (*models.Blog, error) {
	req.Normalize()
	if !req.HasRequiredFields() {
		return nil, fmt.Errorf("%w: title and url are required", pkg.ErrBadRequest)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: token missing or invalid", pkg.ErrUnauthorized)
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		UserID: &user.ID,
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	blog.User = user.Summary()

	s.changed(ws.Event{Op: ws.OpBlogCreate, Data: blog})
	s.log.Debug().Str("blog_id", blog.ID).Str(logger.FieldUserID, user.ID).Msg("blog created")
	return blog, nil
}

// Update replaces the fields present in req and returns the stored blog.
func (s *blogService) Update(ctx context.Context, id string, req *models.UpdateBlogRequest) (*models.Blog, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(blog)
	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}

	s.changed(ws.Event{Op: ws.OpBlogUpdate, Data: blog})
	return blog, nil
}

// Delete removes a blog. Only its creator may do so.
//
// The ownership check and the delete run in one transaction so the blog
// cannot change hands in between.
func (s *blogService) Delete(ctx context.Context, user *models.User, id string) error {
	if user == nil {
		return fmt.Errorf("%w: token missing or invalid", pkg.ErrUnauthorized)
	}
	if err := checkID(id); err != nil {
		return err
	}

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		blogs := repository.NewSQLiteBlogRepo(tx)

		blog, err := blogs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !blog.OwnedBy(user.ID) {
			return fmt.Errorf("%w: only the creator can delete this blog", pkg.ErrForbidden)
		}
		return blogs.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.changed(ws.Event{Op: ws.OpBlogDelete, Data: ws.BlogDeleteData{ID: id}})
	s.log.Debug().Str("blog_id", id).Str(logger.FieldUserID, user.ID).Msg("blog deleted")
	return nil
}

func (s *blogService) Stats(ctx context.Context) (*models.BlogStats, error) {
	if s.stats != nil {
		if stats, ok := s.stats.Get(statsKey); ok {
			return &stats, nil
		}
	}

	gen := s.generation()

	blogs, err := s.blogRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := listhelper.Summarize(blogs)
	if s.stats != nil {
		s.statsMu.Lock()
		if gen == s.statsGen {
			s.stats.Set(statsKey, stats)
		}
		s.statsMu.Unlock()
	}
	return &stats, nil
}

func (s *blogService) generation() uint64 {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.statsGen
}

// changed runs after every successful write.
func (s *blogService) changed(event ws.Event) {
	s.statsMu.Lock()
	s.statsGen++
	if s.stats != nil {
		s.stats.Clear()
	}
	s.statsMu.Unlock()

	if s.hub != nil {
		s.hub.BroadcastToAll(event)
	}
}

// checkID rejects path ids that cannot name a stored record.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformatted id", pkg.ErrBadRequest)
	}
	return nil
}
