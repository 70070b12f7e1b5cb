package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"glambook/agent/extract"
	"glambook/models"

	"go.uber.org/zap"
)

type fakeOTP struct {
	code        string
	issued      int
	resent      int
	forceStatus OTPStatus
	force       bool
}

func (f *fakeOTP) Issue(ctx context.Context, sessionID, phone string) error {
	f.issued++
	f.code = "123456"
	return nil
}

func (f *fakeOTP) Verify(ctx context.Context, sessionID, code string) (OTPStatus, int, error) {
	if f.force {
		return f.forceStatus, 0, nil
	}
	if code == f.code {
		return OTPOK, 0, nil
	}
	return OTPMismatch, 2, nil
}

func (f *fakeOTP) Resend(ctx context.Context, sessionID, phone string) error {
	f.resent++
	return nil
}

type fakeBookings struct {
	saved    []*models.Booking
	verified int
}

func (f *fakeBookings) SavePending(ctx context.Context, b *models.Booking) error {
	f.saved = append(f.saved, b)
	return nil
}

func (f *fakeBookings) MarkVerified(ctx context.Context, sessionID string) (string, error) {
	f.verified++
	return "GB-1001", nil
}

type fakeReminders struct {
	scheduled []string
}

func (f *fakeReminders) ScheduleReminder(ctx context.Context, bookingID string, intent *models.BookingIntent) error {
	f.scheduled = append(f.scheduled, bookingID)
	return nil
}

func newTestFSM() (*FSM, *fakeOTP, *fakeBookings) {
	orch := extract.NewOrchestrator(nil, nil)
	orch.Now = func() time.Time {
		return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	}
	otp := &fakeOTP{}
	bookings := &fakeBookings{}
	fsm := NewFSM(orch, nil, otp, bookings, zap.NewNop(), 3)
	return fsm, otp, bookings
}

func completeIntent() *models.BookingIntent {
	return &models.BookingIntent{
		Service:        "Bridal Makeup Services",
		Package:        "Signature Bridal Makeup",
		Name:           "Priya Sharma",
		Email:          "priya@gmail.com",
		Phone:          "+919876543210",
		PhoneDetail:    &models.PhoneInfo{Full: "+919876543210", CountryCode: "+91", National: "9876543210", Country: "India", Formatted: "+91 98765 43210"},
		ServiceCountry: "India",
		Date:           "2027-03-15",
		Address:        "12 MG Road, Andheri",
		Pincode:        "400001",
		Language:       "en",
	}
}

func TestFSMFullBookingRoundTrip(t *testing.T) {
	fsm, otp, bookings := newTestFSM()
	reminders := &fakeReminders{}
	fsm.Reminders = reminders
	ctx := context.Background()
	mem := models.NewConversationMemory("s1", "en")

	step := func(msg string, wantState models.BookingState, wantAction string) TurnResult {
		t.Helper()
		res := fsm.Process(ctx, msg, mem)
		if mem.State != wantState {
			t.Fatalf("after %q: state = %q, want %q", msg, mem.State, wantState)
		}
		if res.Action != wantAction {
			t.Fatalf("after %q: action = %q, want %q", msg, res.Action, wantAction)
		}
		mem.Record(msg, res.Message)
		return res
	}

	step("hi", models.StateGreeting, ActionGreeting)
	step("I want to book makeup", models.StateSelectingService, ActionShowServices)
	step("1", models.StateSelectingPackage, ActionShowPackages)
	if mem.Intent.Service != "Bridal Makeup Services" {
		t.Fatalf("service = %q", mem.Intent.Service)
	}
	step("2", models.StateCollectingDetails, ActionAskDetails)
	if mem.Intent.Package != "Luxury Bridal Makeup (HD / Brush)" {
		t.Fatalf("package = %q", mem.Intent.Package)
	}

	step("My name is Priya Sharma, my email is priya@gmail.com, phone +919876543210, pincode 110001, address 12 MG Road Mumbai, date 15 March 2027",
		models.StateConfirming, ActionAskConfirmation)
	if !mem.Intent.IsComplete() {
		t.Fatalf("intent incomplete: missing %v", mem.Intent.MissingFields())
	}
	if mem.Intent.Date != "2027-03-15" || mem.Intent.ServiceCountry != "India" {
		t.Fatalf("date/country = %q/%q", mem.Intent.Date, mem.Intent.ServiceCountry)
	}

	res := step("yes", models.StateOTPSent, ActionOTPSent)
	if res.BookingID == "" {
		t.Fatal("no booking id returned with the otp prompt")
	}
	if otp.issued != 1 || len(bookings.saved) != 1 {
		t.Fatalf("issued = %d, saved = %d", otp.issued, len(bookings.saved))
	}
	if b := bookings.saved[0]; b.Status != models.BookingStatusPending || b.Phone != "+919876543210" {
		t.Fatalf("saved booking = %+v", b)
	}

	step("999999", models.StateOTPSent, ActionOTPInvalid)
	res = step("my code is 123456", models.StateCompleted, ActionCompleted)
	if res.BookingID != "GB-1001" {
		t.Fatalf("booking id = %q", res.BookingID)
	}
	if bookings.verified != 1 {
		t.Fatalf("verified = %d", bookings.verified)
	}
	if len(reminders.scheduled) != 1 || reminders.scheduled[0] != "GB-1001" {
		t.Fatalf("reminders = %v, want one for GB-1001", reminders.scheduled)
	}
	if mem.Intent.Name != "" || mem.Intent.Email != "" {
		t.Error("intent should hold no personal data after completion")
	}
}

func TestFSMConfirmationPhraseIssuesOTP(t *testing.T) {
	fsm, otp, _ := newTestFSM()
	mem := models.NewConversationMemory("s1b", "en")
	mem.State = models.StateConfirming
	mem.Intent = completeIntent()

	// "correct" is a change keyword, but here it confirms the summary.
	res := fsm.Process(context.Background(), "yes, that's correct", mem)
	if res.Action != ActionOTPSent || mem.State != models.StateOTPSent {
		t.Fatalf("action/state = %q/%q, want otp_sent", res.Action, mem.State)
	}
	if otp.issued != 1 {
		t.Fatalf("issued = %d, want 1", otp.issued)
	}
}

func TestFSMOTPExpired(t *testing.T) {
	fsm, otp, _ := newTestFSM()
	otp.force = true
	otp.forceStatus = OTPExpired
	mem := models.NewConversationMemory("s1c", "en")
	mem.State = models.StateOTPSent
	mem.Intent = completeIntent()

	res := fsm.Process(context.Background(), "123456", mem)
	if mem.State != models.StateOTPSent {
		t.Fatalf("state = %q, an expired code keeps the verification open", mem.State)
	}
	if res.Action != ActionOTPInvalid || !strings.Contains(res.Message, "expired") {
		t.Fatalf("action/message = %q/%q, want an expiry prompt", res.Action, res.Message)
	}
}

func TestFSMOTPExhausted(t *testing.T) {
	fsm, otp, bookings := newTestFSM()
	otp.force = true
	otp.forceStatus = OTPExhausted
	mem := models.NewConversationMemory("s1d", "en")
	mem.State = models.StateOTPSent
	mem.Intent = completeIntent()

	res := fsm.Process(context.Background(), "123456", mem)
	if mem.State != models.StateGreeting {
		t.Fatalf("state = %q, exhausted attempts abandon the booking", mem.State)
	}
	if res.Action != ActionError {
		t.Fatalf("action = %q, want error", res.Action)
	}
	if bookings.verified != 0 {
		t.Error("no booking may be verified after exhaustion")
	}
	if mem.Intent.Name != "" || mem.Intent.Phone != "" {
		t.Error("intent should be cleared after exhaustion")
	}
}

func TestFSMRestartResetsEverything(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s2", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent = completeIntent()
	mem.OffTrack = 2

	res := fsm.Process(context.Background(), "start over", mem)
	if res.Action != ActionRestarted || mem.State != models.StateGreeting {
		t.Fatalf("action/state = %q/%q", res.Action, mem.State)
	}
	if mem.Intent.Name != "" || mem.Intent.Service != "" {
		t.Error("intent should be cleared on restart")
	}
	if mem.Intent.Language != "en" {
		t.Error("language must survive the reset")
	}
	if mem.OffTrack != 0 {
		t.Error("off-track counter should be cleared")
	}
}

func TestFSMExitIgnoredDuringOTP(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s3", "en")
	mem.State = models.StateOTPSent
	mem.Intent = completeIntent()

	// "bye" is an exit everywhere except otp_sent, where it is just an
	// invalid code.
	res := fsm.Process(context.Background(), "bye", mem)
	if mem.State != models.StateOTPSent {
		t.Fatalf("state = %q, want otp_sent", mem.State)
	}
	if res.Action != ActionOTPInvalid {
		t.Fatalf("action = %q, want otp_invalid", res.Action)
	}
}

func TestFSMCancelDuringOTP(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s4", "en")
	mem.State = models.StateOTPSent
	mem.Intent = completeIntent()

	res := fsm.Process(context.Background(), "cancel", mem)
	if res.Action != ActionCancelled || mem.State != models.StateGreeting {
		t.Fatalf("action/state = %q/%q", res.Action, mem.State)
	}
	if mem.Intent.Name != "" {
		t.Error("intent should be cleared on cancel")
	}
}

func TestFSMFrustrationDeescalates(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s5", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent.Service = "Party Makeup Services"
	mem.Intent.Package = "Party Makeup by Senior Artist"

	res := fsm.Process(context.Background(), "THIS IS USELESS", mem)
	if !res.Frustrated {
		t.Fatal("frustrated flag should be set")
	}
	if !strings.Contains(res.Message, "frustrating") {
		t.Errorf("reply should open with de-escalation, got %q", res.Message)
	}
	if mem.State != models.StateCollectingDetails {
		t.Fatalf("state = %q, frustration must not lose progress", mem.State)
	}
}

func TestFSMFrustratedMessageStillExtracts(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s5b", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent.Service = "Party Makeup Services"
	mem.Intent.Package = "Party Makeup by Senior Artist"

	res := fsm.Process(context.Background(), "I ALREADY SAID my email is priya@gmail.com!!", mem)
	if !res.Frustrated {
		t.Fatal("frustrated flag should be set")
	}
	if mem.Intent.Email != "priya@gmail.com" {
		t.Fatalf("email = %q, data in a frustrated message must not be dropped", mem.Intent.Email)
	}
}

func TestFSMOffTrackCap(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s6", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent.Service = "Party Makeup Services"
	mem.Intent.Package = "Party Makeup by Senior Artist"

	ctx := context.Background()
	fsm.Process(ctx, "do you travel to other cities?", mem)
	if mem.OffTrack != 1 {
		t.Fatalf("offTrack = %d, want 1", mem.OffTrack)
	}
	fsm.Process(ctx, "can you do trials before the event?", mem)
	if mem.OffTrack != 2 {
		t.Fatalf("offTrack = %d, want 2", mem.OffTrack)
	}
	// Third consecutive question hits the cap and resets the counter.
	fsm.Process(ctx, "do you work on weekends?", mem)
	if mem.OffTrack != 0 {
		t.Fatalf("offTrack = %d, want reset to 0", mem.OffTrack)
	}
}

func TestFSMCompletionClaimWithGaps(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s7a", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent.Service = "Party Makeup Services"
	mem.Intent.Package = "Party Makeup by Lead Artist"
	mem.Intent.Name = "Priya Sharma"

	res := fsm.Process(context.Background(), "that's all, I'm done", mem)
	if mem.State != models.StateCollectingDetails {
		t.Fatalf("state = %q, gaps must keep the flow in collection", mem.State)
	}
	if res.Action != ActionAskDetails || !res.Understood {
		t.Fatalf("action/understood = %q/%v, want ask_details and understood", res.Action, res.Understood)
	}
	if len(res.Missing) == 0 {
		t.Error("the reply should list what is still needed")
	}
}

func TestFSMCompletionClaimWhenComplete(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s7b", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent = completeIntent()

	res := fsm.Process(context.Background(), "done", mem)
	if mem.State != models.StateConfirming {
		t.Fatalf("state = %q, want confirming", mem.State)
	}
	if res.Action != ActionAskConfirmation {
		t.Fatalf("action = %q, want ask_confirmation", res.Action)
	}
}

func TestFSMSequentialCollection(t *testing.T) {
	fsm, _, _ := newTestFSM()
	ctx := context.Background()
	mem := models.NewConversationMemory("s7", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent.Service = "Henna (Mehendi) Services"
	mem.Intent.Package = "Henna by Lead Artist"

	// Garbage drops the flow into one-question-at-a-time mode.
	res := fsm.Process(ctx, "hmm let me think about stuff", mem)
	if res.Action != ActionSequentialAsk {
		t.Fatalf("action = %q, want sequential_ask", res.Action)
	}
	if mem.Intent.Sequential == nil || mem.Intent.Sequential.LastAskedField != models.FieldName {
		t.Fatalf("sequential = %+v, want name asked first", mem.Intent.Sequential)
	}

	res = fsm.Process(ctx, "Priya Sharma", mem)
	if mem.Intent.Name != "Priya Sharma" {
		t.Fatalf("name = %q", mem.Intent.Name)
	}
	if res.Action != ActionSequentialAsk || mem.Intent.Sequential.LastAskedField != models.FieldEmail {
		t.Fatalf("action = %q, asked = %+v, want email next", res.Action, mem.Intent.Sequential)
	}

	fsm.Process(ctx, "priya@gmail.com", mem)
	if mem.Intent.Email != "priya@gmail.com" {
		t.Fatalf("email = %q", mem.Intent.Email)
	}
	if mem.Intent.Sequential.LastAskedField != models.FieldPhone {
		t.Fatalf("asked = %q, want phone next", mem.Intent.Sequential.LastAskedField)
	}
}

func TestFSMYearClarification(t *testing.T) {
	fsm, _, _ := newTestFSM()
	ctx := context.Background()
	mem := models.NewConversationMemory("s8", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent.Service = "Party Makeup Services"
	mem.Intent.Package = "Party Makeup by Lead Artist"

	res := fsm.Process(ctx, "15 March", mem)
	if res.Action != ActionAskYear {
		t.Fatalf("action = %q, want ask_year", res.Action)
	}
	if mem.Intent.Date != "2026-03-15" {
		t.Fatalf("date = %q, want the nearest future occurrence", mem.Intent.Date)
	}

	res = fsm.Process(ctx, "2027", mem)
	if res.Action != ActionYearProvided {
		t.Fatalf("action = %q, want year_provided", res.Action)
	}
	if mem.Intent.Date != "2027-03-15" {
		t.Fatalf("date = %q, want 2027-03-15", mem.Intent.Date)
	}
	if mem.Intent.DateMeta.NeedsYear {
		t.Error("needsYear should be cleared")
	}
}

func TestFSMEmailSelection(t *testing.T) {
	fsm, _, _ := newTestFSM()
	ctx := context.Background()
	mem := models.NewConversationMemory("s9", "en")
	mem.State = models.StateCollectingDetails
	mem.Intent.Service = "Party Makeup Services"
	mem.Intent.Package = "Party Makeup by Lead Artist"

	res := fsm.Process(ctx, "use a@gmail.com or b@yahoo.com", mem)
	if res.Action != ActionEmailSelection {
		t.Fatalf("action = %q, want email_selection", res.Action)
	}
	if mem.Intent.EmailChoice == nil || len(mem.Intent.EmailChoice.Options) != 2 {
		t.Fatalf("emailChoice = %+v", mem.Intent.EmailChoice)
	}

	fsm.Process(ctx, "2", mem)
	if mem.Intent.Email != "b@yahoo.com" {
		t.Fatalf("email = %q, want b@yahoo.com", mem.Intent.Email)
	}
	if mem.Intent.EmailChoice != nil {
		t.Error("emailChoice should be cleared after the pick")
	}
}

func TestFSMInlineChangeWhileConfirming(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s10", "en")
	mem.State = models.StateConfirming
	mem.Intent = completeIntent()

	res := fsm.Process(context.Background(), "change my email address to priya.new@gmail.com", mem)
	if res.Action != ActionChangeApplied {
		t.Fatalf("action = %q, want change_applied", res.Action)
	}
	if mem.Intent.Email != "priya.new@gmail.com" {
		t.Fatalf("email = %q", mem.Intent.Email)
	}
	if mem.State != models.StateConfirming {
		t.Fatalf("state = %q, complete intent should stay in confirming", mem.State)
	}
}

func TestFSMChangeMenuFlow(t *testing.T) {
	fsm, _, _ := newTestFSM()
	ctx := context.Background()
	mem := models.NewConversationMemory("s11", "en")
	mem.State = models.StateConfirming
	mem.Intent = completeIntent()

	res := fsm.Process(ctx, "no", mem)
	if res.Action != ActionChangeMenu || mem.State != models.StateCollectingDetails {
		t.Fatalf("action/state = %q/%q, want change_menu/collecting_details", res.Action, mem.State)
	}

	res = fsm.Process(ctx, "3", mem)
	if res.Action != ActionChangeValue || res.ChangingField != models.FieldPhone {
		t.Fatalf("action = %q changing %q, want change_value/phone", res.Action, res.ChangingField)
	}

	res = fsm.Process(ctx, "+9779841234567", mem)
	if res.Action != ActionChangeApplied {
		t.Fatalf("action = %q, want change_applied", res.Action)
	}
	if mem.Intent.Phone != "+9779841234567" || mem.Intent.PhoneDetail.Country != "Nepal" {
		t.Fatalf("phone = %q (%+v)", mem.Intent.Phone, mem.Intent.PhoneDetail)
	}
	if mem.State != models.StateConfirming {
		t.Fatalf("state = %q, want back to confirming", mem.State)
	}
}

func TestFSMRefusesMismatchedSummaryWords(t *testing.T) {
	fsm, _, _ := newTestFSM()
	mem := models.NewConversationMemory("s12", "en")
	mem.State = models.StateConfirming
	mem.Intent = completeIntent()

	res := fsm.Process(context.Background(), "hmm", mem)
	if res.Action != ActionAskConfirmation || mem.State != models.StateConfirming {
		t.Fatalf("action/state = %q/%q, unclear replies must re-show the summary", res.Action, mem.State)
	}
	if res.Understood {
		t.Error("an unclear confirmation reply is not understood")
	}
	if !strings.Contains(res.Message, "Priya Sharma") {
		t.Errorf("summary should repeat the collected details, got %q", res.Message)
	}
}
