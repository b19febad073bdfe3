package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewAndError(t *testing.T) {
	err := New(ErrCodeInvalidStatus, "unknown status: %s", "exploded")
	want := "INVALID_STATUS: unknown status: exploded"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStoreUnavailable, cause, "snapshot fetch failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q should include the cause", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeCycleDetected, "dependency cycle")
	if !Is(err, ErrCodeCycleDetected) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match a non-structured error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeSelfDependency, "subsystem depends on itself")
	if got := UserMessage(err); got != "subsystem depends on itself" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestIsDataIntegrity(t *testing.T) {
	for _, code := range []Code{ErrCodeUnknownDependency, ErrCodeSelfDependency, ErrCodeCycleDetected} {
		if !IsDataIntegrity(New(code, "x")) {
			t.Errorf("%s should be a data-integrity code", code)
		}
	}
	if IsDataIntegrity(New(ErrCodeStoreUnavailable, "x")) {
		t.Error("transient codes are not data-integrity failures")
	}
	if IsDataIntegrity(stderrors.New("plain")) {
		t.Error("plain errors are not data-integrity failures")
	}
}

func TestValidateSubsystemID(t *testing.T) {
	valid := []string{"reactor", "life-support", "deck_2.sensors", "a"}
	for _, id := range valid {
		if err := ValidateSubsystemID(id); err != nil {
			t.Errorf("ValidateSubsystemID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{
		"",
		"../etc/passwd",
		"a//b",
		"bad\\path",
		"null\x00byte",
		"ctrl\tchar",
		strings.Repeat("x", 257),
	}
	for _, id := range invalid {
		err := ValidateSubsystemID(id)
		if err == nil {
			t.Errorf("ValidateSubsystemID(%q) should fail", id)
			continue
		}
		if !Is(err, ErrCodeInvalidSubsystem) {
			t.Errorf("ValidateSubsystemID(%q) code = %q", id, GetCode(err))
		}
	}
}
