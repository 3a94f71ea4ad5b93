package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/studiofolio/backend/internal/model"
	"github.com/studiofolio/backend/internal/repository"
	"github.com/studiofolio/backend/pkg/mailer"
)

// ErrAlreadySent is returned when sending a campaign that already completed.
var ErrAlreadySent = errors.New("campaign already sent")

// ErrSendInProgress is returned when another send run holds the campaign.
var ErrSendInProgress = errors.New("campaign send already in progress")

// CampaignService defines the business logic for newsletter campaigns.
type CampaignService interface {
	// Create stores a new campaign in draft status.
	Create(ctx context.Context, slug, subject, html string) (*model.Campaign, error)

	// List returns all campaigns, newest first.
	List(ctx context.Context) ([]*model.Campaign, error)

	// Send delivers the campaign to every active subscriber, sequentially,
	// and tallies successes and failures. One recipient's failure never
	// aborts the batch; the campaign ends as sent regardless.
	Send(ctx context.Context, campaignID string) (*model.SendResult, error)
}

// campaignServiceImpl is the production implementation of CampaignService.
type campaignServiceImpl struct {
	campaigns   repository.CampaignRepository
	subscribers repository.SubscriberRepository
	mailer      mailer.Mailer
	siteURL     string
}

// NewCampaignService creates a CampaignService. siteURL is the public base
// URL used to build per-subscriber unsubscribe links.
func NewCampaignService(campaigns repository.CampaignRepository, subscribers repository.SubscriberRepository, m mailer.Mailer, siteURL string) CampaignService {
	return &campaignServiceImpl{
		campaigns:   campaigns,
		subscribers: subscribers,
		mailer:      m,
		siteURL:     strings.TrimRight(siteURL, "/"),
	}
}

func (s *campaignServiceImpl) Create(ctx context.Context, slug, subject, html string) (*model.Campaign, error) {
	c := &model.Campaign{
		Slug:    slug,
		Subject: subject,
		HTML:    html,
		Status:  model.CampaignStatusDraft,
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *campaignServiceImpl) List(ctx context.Context) ([]*model.Campaign, error) {
	return s.campaigns.List(ctx)
}

// Send runs the campaign send loop. The sending claim is a single atomic
// conditional update in the repository, so two concurrent invocations cannot
// both start the loop. Subscribers are iterated in store order with no retry,
// batching or concurrency; a crash mid-loop leaves the campaign in "sending"
// with no resumption.
func (s *campaignServiceImpl) Send(ctx context.Context, campaignID string) (*model.SendResult, error) {
	c, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.Status == model.CampaignStatusSent {
		return nil, ErrAlreadySent
	}

	claimed, err := s.campaigns.ClaimSending(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrSendInProgress
	}

	subs, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &model.SendResult{Total: len(subs)}
	for _, sub := range subs {
		body := c.HTML + s.unsubscribeFooter(sub.UnsubscribeToken)
		if err := s.mailer.Send(ctx, sub.Email, c.Subject, body); err != nil {
			slog.Error("campaign send failed for recipient",
				"campaign", c.ID, "subscriber", sub.Email, "error", err)
			result.FailCount++
			continue
		}
		result.SentCount++
	}

	if err := s.campaigns.MarkSent(ctx, campaignID, time.Now().UTC()); err != nil {
		return result, err
	}

	slog.Info("campaign sent",
		"campaign", c.ID, "slug", c.Slug,
		"sent", result.SentCount, "failed", result.FailCount, "total", result.Total)
	return result, nil
}

func (s *campaignServiceImpl) unsubscribeFooter(token string) string {
	link := fmt.Sprintf("%s/api/newsletter/unsubscribe?token=%s", s.siteURL, token)
	return fmt.Sprintf(`<hr style="margin-top:32px;border:none;border-top:1px solid #e5e5e5">`+
		`<p style="font-size:12px;color:#888">You are receiving this email because you subscribed to the newsletter. `+
		`<a href="%s">Unsubscribe</a></p>`, link)
}
