package app

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestRegisterFlags(t *testing.T) {
	tests := []struct {
		name     string
		register func(*pflag.FlagSet)
		flags    []string
	}{
		{"global", RegisterGlobalFlags, []string{"config"}},
		{"server", RegisterServerFlags, []string{
			"transport", "host", "port", "auth-type", "auth-basic-username",
			"auth-basic-password", "auth-api-keys", "output", "index-dir", "max-results",
		}},
		{"site", RegisterSiteFlags, []string{
			"source", "output", "content-filename", "exclude", "max-file-size",
			"preview-length", "workers", "index", "index-dir",
		}},
		{"notes", RegisterNotesFlags, []string{"notes-dir", "themes-config", "index-template", "lock-timeout"}},
		{"search", RegisterSearchFlags, []string{"output", "index-dir", "max-results", "type", "subtype"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			tt.register(flags)
			for _, name := range tt.flags {
				if flags.Lookup(name) == nil {
					t.Errorf("Expected flag %q to be registered", name)
				}
			}
		})
	}
}

func TestRegisterServerFlags_Shorthand(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterServerFlags(flags)

	shorthandFlags := map[string]string{
		"transport":           "t",
		"host":                "H",
		"port":                "p",
		"auth-type":           "a",
		"auth-basic-username": "u",
		"auth-basic-password": "P",
		"auth-api-keys":       "k",
		"output":              "o",
	}

	for name, shorthand := range shorthandFlags {
		flag := flags.Lookup(name)
		if flag == nil {
			t.Errorf("Flag %q not found", name)
			continue
		}
		if flag.Shorthand != shorthand {
			t.Errorf("Flag %q expected shorthand %q, got %q", name, shorthand, flag.Shorthand)
		}
	}
}

func TestRegisterSiteFlags_SetValues(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterSiteFlags(flags)

	err := flags.Parse([]string{
		"-s", "src",
		"-o", "out",
		"--exclude", "drafts/**,tmp/**",
		"--workers", "8",
		"--index=false",
	})
	if err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if source, _ := flags.GetString("source"); source != "src" {
		t.Errorf("Expected source 'src', got '%s'", source)
	}
	if output, _ := flags.GetString("output"); output != "out" {
		t.Errorf("Expected output 'out', got '%s'", output)
	}
	if exclude, _ := flags.GetStringSlice("exclude"); len(exclude) != 2 || exclude[1] != "tmp/**" {
		t.Errorf("Unexpected exclude %v", exclude)
	}
	if workers, _ := flags.GetInt("workers"); workers != 8 {
		t.Errorf("Expected workers 8, got %d", workers)
	}
	if index, _ := flags.GetBool("index"); index {
		t.Error("Expected index disabled")
	}
}
