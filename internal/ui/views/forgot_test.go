// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"errors"
	"testing"

	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// FORGOT PASSWORD FLOW TESTS
// =============================================================================

func TestForgotStartsAtEmailStep(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	if v.step != forgotStepEmail {
		t.Errorf("step = %d, want forgotStepEmail", v.step)
	}
	if v.Done() {
		t.Error("fresh flow must not report done")
	}
}

func TestForgotRejectsBadEmail(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("nope")

	v, cmd := v.Update(enterKey())

	if cmd != nil {
		t.Error("invalid email must not issue a command")
	}
	if v.errMsg != "Enter a valid email address." {
		t.Errorf("errMsg = %q", v.errMsg)
	}
	if v.step != forgotStepEmail {
		t.Error("flow must stay on the email step")
	}
}

func TestForgotEmailStepAdvancesToOTP(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("ana@example.com")

	v, cmd := v.Update(enterKey())
	if cmd == nil {
		t.Fatal("valid email must issue a command")
	}
	if !v.busy {
		t.Error("submit must mark the flow busy")
	}

	v, _ = v.Update(ForgotResultMsg{})

	if v.step != forgotStepOTP {
		t.Errorf("step = %d, want forgotStepOTP", v.step)
	}
	if v.busy {
		t.Error("result must clear the busy state")
	}
	if v.infoMsg != "Check your email for the verification code." {
		t.Errorf("infoMsg = %q", v.infoMsg)
	}
	if v.emailValue != "ana@example.com" {
		t.Errorf("emailValue = %q, want the submitted email", v.emailValue)
	}
}

func TestForgotRejectsShortOTP(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	v.step = forgotStepOTP
	v.emailValue = "ana@example.com"
	v.otp.SetValue("123")

	v, cmd := v.Update(enterKey())

	if cmd != nil {
		t.Error("short code must not issue a command")
	}
	if v.errMsg != "Enter the 6-digit code from your email." {
		t.Errorf("errMsg = %q", v.errMsg)
	}
}

func TestForgotOTPStepAdvancesToPassword(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	v.step = forgotStepOTP
	v.emailValue = "ana@example.com"
	v.otp.SetValue("482913")

	v, cmd := v.Update(enterKey())
	if cmd == nil {
		t.Fatal("valid code must issue a command")
	}

	v, _ = v.Update(OTPResultMsg{})

	if v.step != forgotStepPassword {
		t.Errorf("step = %d, want forgotStepPassword", v.step)
	}
	if v.otpValue != "482913" {
		t.Errorf("otpValue = %q, want the submitted code", v.otpValue)
	}
}

func TestForgotRejectsShortPassword(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	v.step = forgotStepPassword
	v.emailValue = "ana@example.com"
	v.otpValue = "482913"
	v.pass.SetValue("short")

	v, cmd := v.Update(enterKey())

	if cmd != nil {
		t.Error("short password must not issue a command")
	}
	if v.errMsg != "Password must be at least 8 characters." {
		t.Errorf("errMsg = %q", v.errMsg)
	}
}

func TestForgotResetCompletesFlow(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	v.step = forgotStepPassword
	v.emailValue = "ana@example.com"
	v.otpValue = "482913"
	v.pass.SetValue("correct horse battery")

	v, cmd := v.Update(enterKey())
	if cmd == nil {
		t.Fatal("valid password must issue a command")
	}

	v, _ = v.Update(ResetResultMsg{})

	if !v.Done() {
		t.Error("flow must report done after a successful reset")
	}
	if v.infoMsg != "Password reset. You can sign in now." {
		t.Errorf("infoMsg = %q", v.infoMsg)
	}
}

func TestForgotServerErrorStaysOnStep(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("ana@example.com")
	v, _ = v.Update(enterKey())

	v, _ = v.Update(ForgotResultMsg{Err: errors.New("user not found")})

	if v.step != forgotStepEmail {
		t.Error("a failed request must not advance the flow")
	}
	if v.errMsg != "user not found" {
		t.Errorf("errMsg = %q", v.errMsg)
	}
	if v.busy {
		t.Error("error must clear the busy state")
	}
}

func TestForgotResetRestartsFlow(t *testing.T) {
	v := NewForgot(styles.NewTheme(), newTestClient(t))
	v.step = forgotStepDone
	v.emailValue = "ana@example.com"
	v.otpValue = "482913"
	v.infoMsg = "stale"

	v.Reset()

	if v.step != forgotStepEmail {
		t.Error("Reset() must return to the email step")
	}
	if v.emailValue != "" || v.otpValue != "" {
		t.Error("Reset() must clear carried values")
	}
	if v.infoMsg != "" {
		t.Error("Reset() must clear info text")
	}
}
