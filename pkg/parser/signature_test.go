package parser

import "testing"

func TestSignature_StableAcrossEmbeddedData(t *testing.T) {
	a := &LogEntry{
		Severity: "ERROR",
		Source:   "django.request",
		Message:  "IntegrityError: duplicate key value violates constraint, id=1234",
		StackLines: []string{
			"Traceback (most recent call last):",
			`  File "/app/orders/models.py", line 88, in save`,
		},
	}
	b := &LogEntry{
		Severity: "ERROR",
		Source:   "django.request",
		Message:  "IntegrityError: duplicate key value violates constraint, id=98765",
		StackLines: []string{
			"Traceback (most recent call last):",
			`  File "/app/orders/models.py", line 88, in save`,
		},
	}

	if a.Signature() != b.Signature() {
		t.Errorf("signatures differ for equivalent failures: %q vs %q", a.Signature(), b.Signature())
	}
}

func TestSignature_DifferentExceptionTypesDiffer(t *testing.T) {
	a := &LogEntry{Severity: "ERROR", Source: "app", Message: "ValueError: x"}
	b := &LogEntry{Severity: "ERROR", Source: "app", Message: "TypeError: x"}

	if a.Signature() == b.Signature() {
		t.Errorf("ValueError and TypeError collapsed to one signature")
	}
}

func TestSignature_DifferentSourcesDiffer(t *testing.T) {
	a := &LogEntry{Severity: "ERROR", Source: "app.orders", Message: "ValueError: x"}
	b := &LogEntry{Severity: "ERROR", Source: "app.billing", Message: "ValueError: x"}

	if a.Signature() == b.Signature() {
		t.Errorf("different sources collapsed to one signature")
	}
}

func TestSignature_Format(t *testing.T) {
	e := &LogEntry{Severity: "ERROR", Source: "app", Message: "ValueError: x"}
	sig := e.Signature()

	if len(sig) != 8 {
		t.Errorf("signature length = %d, want 8", len(sig))
	}
	for _, c := range sig {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Errorf("signature %q contains non-hex character %q", sig, c)
		}
	}
}

func TestExceptionToken(t *testing.T) {
	tests := []struct {
		name  string
		entry LogEntry
		want  string
	}{
		{
			name:  "error token in message",
			entry: LogEntry{Message: "ConnectionError: refused"},
			want:  "ConnectionError",
		},
		{
			name:  "bare exception token",
			entry: LogEntry{Message: "Exception: something odd"},
			want:  "Exception",
		},
		{
			name:  "named exception token",
			entry: LogEntry{Message: "ValidationException: bad field"},
			want:  "ValidationException",
		},
		{
			name: "token found in stack when message has none",
			entry: LogEntry{
				Message:    "Internal Server Error: /api/payments/",
				StackLines: []string{"Traceback (most recent call last):", "ConnectionError: refused"},
			},
			want: "ConnectionError",
		},
		{
			name:  "no token anywhere",
			entry: LogEntry{Message: "request took 5s"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.exceptionToken(); got != tt.want {
				t.Errorf("exceptionToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstAppFrame_SkipsVendoredFrames(t *testing.T) {
	e := &LogEntry{
		Severity: "ERROR",
		Source:   "django.request",
		StackLines: []string{
			"Traceback (most recent call last):",
			`  File "/usr/lib/python3/site-packages/django/core/handlers/base.py", line 55, in run`,
			`  File "/app/payments/views.py", line 45, in process_payment`,
		},
	}

	want := `File "/app/payments/views.py", line 45, in process_payment`
	if got := e.firstAppFrame(); got != want {
		t.Errorf("firstAppFrame() = %q, want %q", got, want)
	}
}

func TestFirstAppFrame_Empty(t *testing.T) {
	e := &LogEntry{StackLines: []string{"Traceback (most recent call last):"}}
	if got := e.firstAppFrame(); got != "" {
		t.Errorf("firstAppFrame() = %q, want empty", got)
	}
}
