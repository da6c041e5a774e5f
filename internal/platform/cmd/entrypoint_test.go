package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"server"`
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := ParseConfig(&cfg, map[string]string{"CMD_TEST_ADDRESS": "env:9000", "CMD_TEST_MODE": "env-mode"}); err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "address", cfg.Address, "address")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")
	if err := ParseArgs(fs, []string{"-address", "flag:9001"}); err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Address != "flag:9001" || cfg.Mode != "env-mode" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigAppliesDefaults(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := ParseConfig(&cfg, map[string]string{}); err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Address != "127.0.0.1:8080" || cfg.Mode != "server" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseRejectsMissingTargets(t *testing.T) {
	t.Parallel()

	if err := ParseConfig[testConfig](nil, nil); err == nil {
		t.Fatal("expected nil config target to be rejected")
	}
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected nil flag set to be rejected")
	}
}

func TestRunRejectsMissingInputs(t *testing.T) {
	t.Parallel()

	if err := Run(context.Background(), Service{Name: " "}, func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service name error")
	}
	if err := Run(context.Background(), Service{Name: ServiceWeb}, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunReturnsRunError(t *testing.T) {
	t.Setenv("ECOHOME_OTEL_ENDPOINT", "")

	want := errors.New("boom")
	var sawContext bool
	err := Run(context.Background(), Service{Name: ServiceWeb}, func(ctx context.Context) error {
		sawContext = ctx != nil
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("Run() error = %v, want %v", err, want)
	}
	if !sawContext {
		t.Fatal("run did not receive a context")
	}
}
