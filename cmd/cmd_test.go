package cmd

import "testing"

func TestNewDecodeCommandRegistersExpectedFlags(t *testing.T) {
	c := newDecodeCommand()
	for _, name := range []string{"auto-wb", "camera-wb", "colorspace", "depth", "tiff", "gamma-power", "highlight", "quality", "ca-red", "ca-blue", "bad-pixel-file", "dark-frame", "fuji-rotate", "half-size", "grey-box-left"} {
		if c.Flags().Lookup(name) == nil {
			t.Fatalf("expected decode command to register --%s", name)
		}
	}
	if c.Args == nil {
		t.Fatal("expected decode command to validate its arguments")
	}
}

func TestNewBatchCommandRegistersWorkerFlags(t *testing.T) {
	c := newBatchCommand()
	for _, name := range []string{"recursive", "workers", "timed", "quality"} {
		if c.Flags().Lookup(name) == nil {
			t.Fatalf("expected batch command to register --%s", name)
		}
	}
}

func TestRootCommandRegistersAllSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"decode", "batch", "identify", "preview"} {
		if !names[want] {
			t.Fatalf("expected root command to register subcommand %q, got %v", want, names)
		}
	}
}

func TestIsRawExtensionMatchesKnownSuffixesCaseInsensitively(t *testing.T) {
	cases := map[string]bool{
		"IMG_0001.NEF": true,
		"photo.cr2":    true,
		"photo.dng":    true,
		"photo.txt":    false,
		"photo":        false,
	}
	for name, want := range cases {
		if got := isRawExtension(name); got != want {
			t.Errorf("isRawExtension(%q) = %v, want %v", name, got, want)
		}
	}
}
