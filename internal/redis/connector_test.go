package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

func testOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		DialTimeout:    2 * time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       10,
		ConnectTimeout: 10 * time.Second,
		RetryInterval:  500 * time.Millisecond,
		MaxWait:        4 * time.Second,
		PingTimeout:    time.Second,
		WarnThreshold:  3,
	}
}

func TestBackoff(t *testing.T) {
	b := backoff{wait: 500 * time.Millisecond, max: 3 * time.Second}

	want := []time.Duration{
		500 * time.Millisecond,
		time.Second,
		2 * time.Second,
		3 * time.Second,
		3 * time.Second,
	}
	for i, expected := range want {
		if got := b.next(); got != expected {
			t.Errorf("next() #%d = %v, want %v", i+1, got, expected)
		}
	}
}

func TestBackoffStartsAboveMax(t *testing.T) {
	b := backoff{wait: 10 * time.Second, max: 4 * time.Second}
	if got := b.next(); got != 4*time.Second {
		t.Errorf("next() = %v, want %v", got, 4*time.Second)
	}
}

func TestValidate(t *testing.T) {
	if err := testOptions("localhost:6379").Validate(); err != nil {
		t.Errorf("Validate(defaults) = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*ConnectOptions)
	}{
		{name: "ConnectTimeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }},
		{name: "RetryInterval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }},
		{name: "MaxWait", mutate: func(o *ConnectOptions) { o.MaxWait = -1 }},
		{name: "PingTimeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }},
		{name: "WarnThreshold", mutate: func(o *ConnectOptions) { o.WarnThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions("localhost:6379")
			tt.mutate(&opts)
			err := opts.Validate()
			if err == nil {
				t.Fatalf("Validate() with invalid %s should fail", tt.name)
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("Validate() = %v, want it to name %s", err, tt.name)
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	err := ConnectOptions{}.Validate()
	if err == nil {
		t.Fatal("Validate() on zero options should fail")
	}
	for _, name := range []string{"ConnectTimeout", "RetryInterval", "MaxWait", "PingTimeout"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Validate() = %v, missing %s", err, name)
		}
	}
}

func TestNewUnreachable(t *testing.T) {
	opts := testOptions("127.0.0.1:1")
	opts.ConnectTimeout = 100 * time.Millisecond
	opts.RetryInterval = 20 * time.Millisecond
	opts.PingTimeout = 20 * time.Millisecond
	opts.DialTimeout = 20 * time.Millisecond

	client, err := New(context.Background(), opts, logger.NewNop())
	if err == nil {
		t.Fatal("New() against a closed port should fail")
	}
	if client != nil {
		t.Error("New() should not return a client on failure")
	}
}
