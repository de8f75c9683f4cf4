package dreams

import "testing"

func TestClassifierIsFollowUp(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		text string
		want bool
	}{
		{"почему мне приснился полёт?", true},
		{"ПОЧЕМУ я летал?", true},
		{"что значит вода во сне?", true},
		{"можешь объяснить про дом?", true},
		{"расскажи подробнее", true},
		{"уточни про лестницу", true},
		{"мне приснилось, что я летаю над городом", false},
		{"я видел странный сон про поезд", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := c.IsFollowUp(tc.text); got != tc.want {
			t.Errorf("IsFollowUp(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestClassifierCustomPhrases(t *testing.T) {
	c := NewClassifier("why", "what does it mean")

	if !c.IsFollowUp("Why did I fly?") {
		t.Fatalf("custom phrase not matched")
	}
	if c.IsFollowUp("почему я летал?") {
		t.Fatalf("default phrases should be replaced")
	}
}
