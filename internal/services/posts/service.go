package posts

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"bwa/internal/domain"
	"bwa/internal/ports"
	"bwa/internal/services/milestones"
)

var (
	ErrEmptyPost   = errors.New("post body is empty")
	ErrPostTooLong = errors.New("post body too long")
)

const maxBodyLen = 10_000

type Service struct {
	store    ports.Store
	deriver  *milestones.Deriver
	notifier ports.Notifier
	policy   *bluemonday.Policy
	log      *zap.Logger
}

func New(store ports.Store, deriver *milestones.Deriver, notifier ports.Notifier, log *zap.Logger) *Service {
	if deriver == nil {
		deriver = milestones.New(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		deriver:  deriver,
		notifier: notifier,
		policy:   bluemonday.StrictPolicy(),
		log:      log,
	}
}

type Input struct {
	Hostname string
	UserID   string
	IP       string
	Body     string
}

type Result struct {
	Website    domain.Website
	Post       domain.Interaction
	Milestones []domain.Interaction
}

// Create appends a post to an already scanned website and, in the same
// transaction, promotes a first-time poster to concerned.
func (s *Service) Create(ctx context.Context, in Input) (Result, error) {
	host, err := domain.NormalizeHostname(in.Hostname)
	if err != nil {
		return Result{}, err
	}
	// Bodies are stored as plain text: markup is stripped and the entities
	// the sanitizer emits are decoded again, so limits count what users typed.
	body := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(in.Body)))
	if body == "" {
		return Result{}, ErrEmptyPost
	}
	if len(body) > maxBodyLen {
		return Result{}, fmt.Errorf("%w: limit is %d bytes", ErrPostTooLong, maxBodyLen)
	}

	var res Result
	err = s.store.WithinWebsite(ctx, host, func(tx ports.WebsiteTx) error {
		w, found, err := tx.Website(ctx)
		if err != nil {
			return err
		}
		if !found {
			return ports.ErrWebsiteNotFound
		}
		post, err := tx.AppendPost(ctx, ports.NewPost{UserID: in.UserID, IP: in.IP, Body: body})
		if err != nil {
			return fmt.Errorf("append post: %w", err)
		}
		ms, err := s.deriver.ForPost(ctx, tx, post)
		if err != nil {
			return fmt.Errorf("derive milestones: %w", err)
		}
		res = Result{Website: w, Post: post, Milestones: ms}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.Info("post recorded",
		zap.String("hostname", host),
		zap.String("interaction_id", res.Post.ID),
		zap.Bool("promoted", len(res.Milestones) > 0),
	)
	if s.notifier != nil {
		s.notifier.PostCreated(ctx, res.Website, res.Post)
		if len(res.Milestones) > 0 {
			s.notifier.MilestonesCreated(ctx, res.Website, res.Milestones)
		}
	}
	return res, nil
}
