package birthday

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeSource struct {
	raws []RawRecord
	err  error
}

func (f *fakeSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	return f.raws, f.err
}

type fakeNotifier struct {
	sent   []string
	failOn string // message substring that triggers a send failure
	onSend func() // called after each successful send
}

func (f *fakeNotifier) Send(ctx context.Context, text string) error {
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return errors.New("send failed")
	}
	f.sent = append(f.sent, text)
	if f.onSend != nil {
		f.onSend()
	}
	return nil
}

type fakeWisher struct {
	wish string
	err  error
}

func (f *fakeWisher) Wish(ctx context.Context, name string) (string, error) {
	return f.wish, f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// newTestService wires a Service around fakes with a zero inter-message
// delay and a clock pinned to March 5 2025 in Dhaka.
func newTestService(source Source, notifier Notifier, wisher WishGenerator) *Service {
	s := NewService(discardLogger(), source, notifier, wisher, dhaka, 0)
	s.now = fixedClock(time.Date(2025, time.March, 5, 0, 1, 0, 0, dhaka))
	return s
}

func TestCheckDailySendsGreetings(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Alice", Birthday: "1990-03-05"},
		{Name: "Bob", Birthday: "1988-03-05"},
		{Name: "Carol", Birthday: "1992-07-01"},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, nil)

	if err := svc.CheckDaily(context.Background()); err != nil {
		t.Fatalf("CheckDaily() error = %v", err)
	}

	if len(notifier.sent) != 2 {
		t.Fatalf("sent %d messages, want 2: %q", len(notifier.sent), notifier.sent)
	}
	if notifier.sent[0] != Greeting("Alice") {
		t.Errorf("first message = %q, want greeting for Alice", notifier.sent[0])
	}
	if notifier.sent[1] != Greeting("Bob") {
		t.Errorf("second message = %q, want greeting for Bob", notifier.sent[1])
	}
}

func TestCheckDailyNoBirthdays(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Carol", Birthday: "1992-07-01"},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, nil)

	if err := svc.CheckDaily(context.Background()); err != nil {
		t.Fatalf("CheckDaily() error = %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(notifier.sent))
	}
}

func TestCheckDailyContinuesPastSendFailure(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Alice", Birthday: "1990-03-05"},
		{Name: "Bob", Birthday: "1988-03-05"},
	}}
	notifier := &fakeNotifier{failOn: "Alice"}
	svc := newTestService(source, notifier, nil)

	if err := svc.CheckDaily(context.Background()); err != nil {
		t.Fatalf("CheckDaily() error = %v, want nil despite send failure", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != Greeting("Bob") {
		t.Errorf("sent = %q, want only greeting for Bob", notifier.sent)
	}
}

func TestCheckDailyFetchFailure(t *testing.T) {
	t.Parallel()

	source := &fakeSource{err: errors.New("endpoint down")}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, nil)

	if err := svc.CheckDaily(context.Background()); err == nil {
		t.Fatal("CheckDaily() error = nil, want fetch error")
	}
	if len(notifier.sent) != 0 {
		t.Errorf("sent %d messages after fetch failure, want 0", len(notifier.sent))
	}
}

func TestCheckDailyStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Alice", Birthday: "1990-03-05"},
		{Name: "Bob", Birthday: "1988-03-05"},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	notifier := &fakeNotifier{onSend: cancel}
	svc := newTestService(source, notifier, nil)
	svc.delay = time.Hour // the pause must be interrupted, not waited out

	err := svc.CheckDaily(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("CheckDaily() error = %v, want context.Canceled", err)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("sent %d messages, want 1 before cancellation", len(notifier.sent))
	}
}

func TestCheckDailyUsesGeneratedWish(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Alice", Birthday: "1990-03-05"},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, &fakeWisher{wish: "Shine on!"})

	if err := svc.CheckDaily(context.Background()); err != nil {
		t.Fatalf("CheckDaily() error = %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != GreetingWith("Alice", "Shine on!") {
		t.Errorf("sent = %q, want generated wish greeting", notifier.sent)
	}
}

func TestCheckDailyWishFailureFallsBack(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Alice", Birthday: "1990-03-05"},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, &fakeWisher{err: errors.New("quota exceeded")})

	if err := svc.CheckDaily(context.Background()); err != nil {
		t.Fatalf("CheckDaily() error = %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != Greeting("Alice") {
		t.Errorf("sent = %q, want stock greeting fallback", notifier.sent)
	}
}

func TestSendMonthlyDigest(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Late", Birthday: "1990-03-28"},
		{Name: "First", Birthday: "1991-03-02"},
		{Name: "Elsewhere", Birthday: "1992-06-01"},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, nil)

	if err := svc.SendMonthlyDigest(context.Background()); err != nil {
		t.Fatalf("SendMonthlyDigest() error = %v", err)
	}

	want := Digest([]Record{
		{Name: "First", Month: time.March, Day: 2},
		{Name: "Late", Month: time.March, Day: 28},
	}, time.March)
	if len(notifier.sent) != 1 || notifier.sent[0] != want {
		t.Errorf("sent = %q, want %q", notifier.sent, want)
	}
}

func TestSendMonthlyDigestSkipsUnparseableRecords(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Alice", Birthday: "2020-03-05"},
		{Name: "Bob", Birthday: "2020-03-01"},
		{Name: "Carl", Birthday: "not-a-date"},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, nil)

	if err := svc.SendMonthlyDigest(context.Background()); err != nil {
		t.Fatalf("SendMonthlyDigest() error = %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if strings.Contains(msg, "Carl") {
		t.Errorf("digest includes unparseable record: %q", msg)
	}
	if bob, alice := strings.Index(msg, "Bob"), strings.Index(msg, "Alice"); bob < 0 || alice < 0 || bob > alice {
		t.Errorf("digest order wrong, want Bob (day 1) before Alice (day 5): %q", msg)
	}
}

func TestEmptySourceList(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, nil)

	if err := svc.CheckDaily(context.Background()); err != nil {
		t.Fatalf("CheckDaily() error = %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("daily check sent %d messages for an empty list, want 0", len(notifier.sent))
	}

	if err := svc.SendMonthlyDigest(context.Background()); err != nil {
		t.Fatalf("SendMonthlyDigest() error = %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != NoBirthdaysMessage {
		t.Errorf("sent = %q, want only %q", notifier.sent, NoBirthdaysMessage)
	}
}

func TestSendMonthlyDigestEmptyMonth(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Elsewhere", Birthday: "1992-06-01"},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, nil)

	if err := svc.SendMonthlyDigest(context.Background()); err != nil {
		t.Fatalf("SendMonthlyDigest() error = %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != NoBirthdaysMessage {
		t.Errorf("sent = %q, want %q", notifier.sent, NoBirthdaysMessage)
	}
}

func TestSendMonthlyDigestSendFailure(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "First", Birthday: "1991-03-02"},
	}}
	notifier := &fakeNotifier{failOn: "Birthdays in March"}
	svc := newTestService(source, notifier, nil)

	if err := svc.SendMonthlyDigest(context.Background()); err == nil {
		t.Fatal("SendMonthlyDigest() error = nil, want send error")
	}
}

func TestMonthlyDigestMessage(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "First", Birthday: "1991-03-02"},
	}}
	svc := newTestService(source, &fakeNotifier{}, nil)

	got, err := svc.MonthlyDigestMessage(context.Background())
	if err != nil {
		t.Fatalf("MonthlyDigestMessage() error = %v", err)
	}
	if !strings.Contains(got, "Birthdays in March") || !strings.Contains(got, "First") {
		t.Errorf("MonthlyDigestMessage() = %q, want March digest with First", got)
	}
}

func TestRunAllSurvivesFailures(t *testing.T) {
	t.Parallel()

	source := &fakeSource{err: errors.New("endpoint down")}
	svc := newTestService(source, &fakeNotifier{}, nil)

	// Both checks fail; RunAll must log and return rather than propagate.
	svc.RunAll(context.Background())
}

func TestRunAllSendsBoth(t *testing.T) {
	t.Parallel()

	source := &fakeSource{raws: []RawRecord{
		{Name: "Alice", Birthday: "1990-03-05"},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(source, notifier, nil)

	svc.RunAll(context.Background())

	if len(notifier.sent) != 2 {
		t.Fatalf("sent %d messages, want greeting plus digest: %q", len(notifier.sent), notifier.sent)
	}
	if notifier.sent[0] != Greeting("Alice") {
		t.Errorf("first message = %q, want greeting", notifier.sent[0])
	}
	if !strings.Contains(notifier.sent[1], "Birthdays in March") {
		t.Errorf("second message = %q, want March digest", notifier.sent[1])
	}
}
