package push

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jklemm/hearthside/internal/model"
)

const (
	defaultInterval = 60 * time.Second
	defaultWorkers  = 8
)

// SubscriptionSource is the scheduler's view of the device registry.
type SubscriptionSource interface {
	ListActive() ([]model.PushSubscription, error)
	DeleteByEndpoint(endpoint string) error
	TouchLastUsed(endpoint string, at time.Time) error
}

// SettingsSource provides every user's notification rule configuration.
type SettingsSource interface {
	ListNotificationSettings() ([]model.NotificationSettings, error)
}

// TripSource provides all trips for the travel-prep rule.
type TripSource interface {
	ListAll() ([]model.Trip, error)
}

// Sender delivers one payload to one device endpoint.
type Sender interface {
	Deliver(sub *model.PushSubscription, payload Payload) (Outcome, error)
}

// Scheduler periodically evaluates each user's notification rules and
// fans deliveries out to their registered devices.
type Scheduler struct {
	sender   Sender
	subs     SubscriptionSource
	settings SettingsSource
	trips    TripSource
	guard    *SendGuard
	logger   *slog.Logger

	interval time.Duration
	workers  int
	now      func() time.Time

	evaluating atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a notification scheduler over the given sources.
func NewScheduler(sender Sender, subs SubscriptionSource, settings SettingsSource, trips TripSource, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sender:   sender,
		subs:     subs,
		settings: settings,
		trips:    trips,
		guard:    NewSendGuard(),
		logger:   logger,
		interval: defaultInterval,
		workers:  defaultWorkers,
		now:      time.Now,
	}
}

// Start begins the scheduler loop. The first pass runs immediately rather
// than waiting a full interval.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)

		s.tick()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight pass to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// tick runs one evaluation pass unless the previous pass is still going,
// in which case the tick is skipped. Skipping keeps the guard's
// check-then-act single-writer per key.
func (s *Scheduler) tick() {
	if !s.evaluating.CompareAndSwap(false, true) {
		s.logger.Warn("previous pass still running, skipping tick")
		return
	}
	defer s.evaluating.Store(false)

	s.runPass()
}

// runPass loads registry state and evaluates every user's rules. A store
// read failure aborts the whole pass: evaluating against partial data
// could both miss and double-count, and the next tick retries from
// scratch anyway.
func (s *Scheduler) runPass() {
	now := s.now()

	subs, err := s.subs.ListActive()
	if err != nil {
		s.logger.Error("abort pass: list subscriptions", "error", err)
		return
	}
	settingsList, err := s.settings.ListNotificationSettings()
	if err != nil {
		s.logger.Error("abort pass: list notification settings", "error", err)
		return
	}
	trips, err := s.trips.ListAll()
	if err != nil {
		s.logger.Error("abort pass: list trips", "error", err)
		return
	}

	subsByUser := make(map[int64][]model.PushSubscription)
	for _, sub := range subs {
		subsByUser[sub.UserID] = append(subsByUser[sub.UserID], sub)
	}
	tripsByUser := make(map[int64][]model.Trip)
	for _, trip := range trips {
		tripsByUser[trip.UserID] = append(tripsByUser[trip.UserID], trip)
	}

	// Only users with at least one device and a settings row are
	// candidates; everyone else has nowhere or no reason to send.
	var candidates []model.NotificationSettings
	for _, ns := range settingsList {
		if len(subsByUser[ns.UserID]) > 0 {
			candidates = append(candidates, ns)
		}
	}
	if len(candidates) == 0 {
		return
	}

	workers := s.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	// All of one user's rules run on one worker, so the guard sees a
	// single writer per key.
	jobs := make(chan model.NotificationSettings)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ns := range jobs {
				s.evaluateUser(now, ns, subsByUser[ns.UserID], tripsByUser[ns.UserID])
			}
		}()
	}
	for _, ns := range candidates {
		jobs <- ns
	}
	close(jobs)
	wg.Wait()
}

// evaluateUser runs the reminder and travel rules for one user. A panic
// here is confined to this user; the rest of the pass continues.
func (s *Scheduler) evaluateUser(now time.Time, ns model.NotificationSettings, subs []model.PushSubscription, trips []model.Trip) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("user evaluation panicked", "user_id", ns.UserID, "panic", r)
		}
	}()

	if ns.RemindersEnabled {
		for _, raw := range ns.ReminderTimes {
			tod, err := ParseTimeOfDay(raw)
			if err != nil {
				s.logger.Warn("invalid reminder time", "user_id", ns.UserID, "value", raw, "error", err)
				continue
			}
			if tod.Matches(now) {
				s.send(now, ns.UserID, subs, ReminderNotification{})
				break
			}
		}
	}

	if ns.TravelEnabled {
		for _, trip := range trips {
			d := DaysUntil(now, trip.StartDate)
			if d >= 0 && d <= ns.TravelLeadDays {
				s.send(now, ns.UserID, subs, TravelNotification{Trip: trip, DaysLeft: d})
			}
		}
	}
}

// send delivers one notification to every device of one user, removing
// permanently dead endpoints as it goes. The guard key is marked only
// after at least one delivery succeeded, so an all-failed fan-out retries
// on the next tick.
func (s *Scheduler) send(now time.Time, userID int64, subs []model.PushSubscription, n Notification) {
	key := NewGuardKey(userID, n.GuardKind(), now)
	if !s.guard.ShouldSend(key) {
		return
	}

	payload := n.Payload()
	delivered := false
	for i := range subs {
		sub := &subs[i]
		outcome, err := s.sender.Deliver(sub, payload)
		switch outcome {
		case OutcomeDelivered:
			delivered = true
			if err := s.subs.TouchLastUsed(sub.Endpoint, now); err != nil {
				s.logger.Warn("touch subscription", "endpoint", sub.Endpoint, "error", err)
			}
		case OutcomePermanentFailure:
			s.logger.Info("removing dead push subscription", "user_id", userID, "device", sub.DeviceName)
			if err := s.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
				s.logger.Error("delete dead subscription", "endpoint", sub.Endpoint, "error", err)
			}
		case OutcomeTransientFailure:
			s.logger.Warn("push delivery failed", "user_id", userID, "kind", n.GuardKind(), "error", err)
		}
	}

	if delivered {
		s.guard.MarkSent(key)
	}
}
