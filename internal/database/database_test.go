package database

import "testing"

func TestBackendFor(t *testing.T) {
	tests := []struct {
		url     string
		want    Backend
		wantErr bool
	}{
		{"mongodb://localhost:27017/blog", BackendMongoDB, false},
		{"mongodb+srv://cluster0.example.net/blog", BackendMongoDB, false},
		{"postgres://blog@localhost:5432/blog?sslmode=disable", BackendPostgres, false},
		{"postgresql://localhost/blog", BackendPostgres, false},
		{"mysql://localhost/blog", "", true},
		{"::not a url", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := BackendFor(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got backend %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BackendFor(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
