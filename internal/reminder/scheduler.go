package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler re-evaluates reminders for the signed-in renter once a minute and
// surfaces the most severe one through notify, at most once per session. It
// is started on login and stopped on logout so no timer outlives an identity
// change.
type Scheduler struct {
	evaluator *Evaluator
	notify    func(Reminder)

	mu       sync.Mutex
	cron     *cron.Cron
	notified bool
}

func NewScheduler(evaluator *Evaluator, notify func(Reminder)) *Scheduler {
	return &Scheduler{evaluator: evaluator, notify: notify}
}

// Start begins the evaluation loop for userID, replacing any previous loop.
// The first evaluation runs immediately.
func (s *Scheduler) Start(userID string) {
	s.Stop()

	s.mu.Lock()
	s.notified = false
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() { s.check(userID) }); err != nil {
		s.mu.Unlock()
		log.Printf("Failed to schedule reminder check: %v", err)
		return
	}
	c.Start()
	s.cron = c
	s.mu.Unlock()

	go s.check(userID)
}

// Stop halts the loop. Safe to call repeatedly or without a prior Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c != nil {
		c.Stop()
	}
}

func (s *Scheduler) check(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reminders, err := s.evaluator.Evaluate(ctx, userID)
	if err != nil {
		log.Printf("Reminder evaluation failed for user %s: %v", userID, err)
		return
	}
	if len(reminders) == 0 {
		return
	}

	mostSevere := reminders[0]
	for _, r := range reminders[1:] {
		if r.Severity > mostSevere.Severity {
			mostSevere = r
		}
	}

	s.mu.Lock()
	seen := s.notified
	s.notified = true
	s.mu.Unlock()
	if seen || s.notify == nil {
		return
	}
	s.notify(mostSevere)
}
