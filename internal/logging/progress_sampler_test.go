package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
		{"small bucket size", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "scan") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset() // should not panic
}

func TestProgressSamplerPhaseChange(t *testing.T) {
	s := NewProgressSampler(10)

	if !s.ShouldLog(0, "scan") {
		t.Error("first phase should log")
	}
	if s.ShouldLog(0, "scan") {
		t.Error("same phase and bucket should not log again")
	}
	if !s.ShouldLog(0, "apply") {
		t.Error("phase change should log")
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)

	if !s.ShouldLog(0, "scan") {
		t.Error("0%% should log")
	}
	if s.ShouldLog(9.9, "scan") {
		t.Error("still inside the first bucket, should not log")
	}
	if !s.ShouldLog(10, "scan") {
		t.Error("crossing into the second bucket should log")
	}
	if !s.ShouldLog(55, "scan") {
		t.Error("skipping several buckets forward should log")
	}
	if s.ShouldLog(41, "scan") {
		t.Error("percent moving backwards within seen buckets should not log")
	}
	if !s.ShouldLog(100, "scan") {
		t.Error("100%% should log")
	}
	if s.ShouldLog(100, "scan") {
		t.Error("repeated 100%% should not log")
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(50, "scan")
	s.Reset()
	if !s.ShouldLog(50, "scan") {
		t.Error("after Reset the same event should log again")
	}
}
