package cli

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Root: "/fw"}, false},
		{"all options", Config{Root: "/fw", Verbose: true, HexdumpLen: 64, OutDir: "/tmp/out"}, false},
		{"no root", Config{}, true},
		{"verbose and quiet", Config{Root: "/fw", Verbose: true, Quiet: true}, true},
		{"negative hexdump", Config{Root: "/fw", HexdumpLen: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
