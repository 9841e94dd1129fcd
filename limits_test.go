package relaypager

import "testing"

func Test_IsNormalizedLimitMax(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		max      int
		want     int
		isStrict bool
	}{
		{"zero uses default", 0, 50, DefaultLimit, false},
		{"negative uses default", -10, 50, DefaultLimit, false},
		{"within max unchanged", 7, 50, 7, true},
		{"equal max unchanged", 50, 50, 50, true},
		{"above max clamped", 51, 50, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strict := IsNormalizedLimitMax(tt.limit, tt.max)
			if got != tt.want || strict != tt.isStrict {
				t.Errorf("%s: got=(%d,%v) want=(%d,%v)", tt.name, got, strict, tt.want, tt.isStrict)
			}
		})
	}
}

func Test_NormalizeLimitMax(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		max   int
		want  int
	}{
		{"zero -> default", 0, 77, DefaultLimit},
		{"negative -> default", -3, 77, DefaultLimit},
		{"clamp to max", 1000, 77, 77},
		{"keep when ok", 12, 77, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLimitMax(tt.limit, tt.max); got != tt.want {
				t.Errorf("%s: got %d want %d", tt.name, got, tt.want)
			}
		})
	}
}

func Test_NormalizeLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero -> default", 0, DefaultLimit},
		{"negative -> default", -1, DefaultLimit},
		{"clamp to MaxLimit", MaxLimit + 1, MaxLimit},
		{"keep when ok", 17, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLimit(tt.limit); got != tt.want {
				t.Errorf("%s: got %d want %d", tt.name, got, tt.want)
			}
		})
	}
}

func Test_NormalizeRawLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  Limit
	}{
		{"no limit sentinel", NoLimitRaw, NoLimit},
		{"zero -> default", 0, LimitOf(DefaultLimit)},
		{"other negative -> default", -2, LimitOf(DefaultLimit)},
		{"clamp to MaxLimit", MaxLimit * 2, LimitOf(MaxLimit)},
		{"keep when ok", 25, LimitOf(25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRawLimit(tt.limit); got != tt.want {
				t.Errorf("%s: got %s want %s", tt.name, got, tt.want)
			}
		})
	}
}

func Test_Limit(t *testing.T) {
	tests := []struct {
		name      string
		limit     Limit
		str       string
		valid     bool
		forward   Take
		backward  Take
		exceedsAt int
	}{
		{"absent", Limit{}, "absent", false, Forward(1), Backward(1), -1},
		{"bounded", LimitOf(5), "5", true, Forward(7), Backward(7), 6},
		{"unbounded", NoLimit, "unbounded", true, All(), AllBackward(), -1},
		{"zero", LimitOf(0), "0", false, Forward(2), Backward(2), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.limit.String(); got != tt.str {
				t.Errorf("String=%s want %s", got, tt.str)
			}
			if err := tt.limit.validate(); (err == nil) != tt.valid {
				t.Errorf("validate: valid=%v err=%v", tt.valid, err)
			}
			if tt.limit.IsZero() {
				return
			}
			if got := tt.limit.forward(2); got != tt.forward {
				t.Errorf("forward(2)=%+v want %+v", got, tt.forward)
			}
			if got := tt.limit.backward(2); got != tt.backward {
				t.Errorf("backward(2)=%+v want %+v", got, tt.backward)
			}
			if tt.exceedsAt > 0 && (!tt.limit.exceeds(tt.exceedsAt) || tt.limit.exceeds(tt.exceedsAt-1)) {
				t.Errorf("exceeds must flip at %d", tt.exceedsAt)
			}
			if tt.exceedsAt < 0 && tt.limit.exceeds(MaxSafeLimit) {
				t.Errorf("exceeds must be false")
			}
		})
	}
}

func Test_Limit_orDefault(t *testing.T) {
	if got := (Limit{}).orDefault(LimitOf(3)); got != LimitOf(3) {
		t.Errorf("absent limit must take the default, got %s", got)
	}
	if got := LimitOf(4).orDefault(LimitOf(3)); got != LimitOf(4) {
		t.Errorf("explicit limit must win, got %s", got)
	}
	if got := NoLimit.orDefault(LimitOf(3)); got != NoLimit {
		t.Errorf("NoLimit must win, got %s", got)
	}
}
