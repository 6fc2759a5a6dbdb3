package archive

import "testing"

func TestS3Store_ImplementsStorage(t *testing.T) {
	var _ Storage = (*S3Store)(nil)
}

func TestS3Store_ObjectKey(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "backtests/AAPL/job-1.json", "backtests/AAPL/job-1.json"},
		{"stratix", "backtests/AAPL/job-1.json", "stratix/backtests/AAPL/job-1.json"},
	}

	for _, tt := range tests {
		s := &S3Store{prefix: tt.prefix}
		if got := s.objectKey(tt.key); got != tt.want {
			t.Errorf("objectKey(%q) with prefix %q = %q, want %q", tt.key, tt.prefix, got, tt.want)
		}
	}
}

func TestS3Store_PrefixTrailingSlashTrimmed(t *testing.T) {
	s, err := NewS3(S3Config{Bucket: "b", Region: "us-east-1", Prefix: "stratix/"})
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if got := s.objectKey("x"); got != "stratix/x" {
		t.Errorf("objectKey(x) = %q, want stratix/x", got)
	}
}
