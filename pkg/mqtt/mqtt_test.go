package mqtt

import "testing"

func TestTopicMatch(t *testing.T) {
	cases := []struct {
		pattern string
		topic   string
		want    bool
	}{
		{"pancyjail/jail/released", "pancyjail/jail/released", true},
		{"pancyjail/jail/+", "pancyjail/jail/jailed", true},
		{"pancyjail/jail/+", "pancyjail/jail/jailed/extra", false},
		{"pancyjail/#", "pancyjail/jail/released", true},
		{"pancyjail/#", "pancyjail", true},
		{"pancyjail/jail/released", "pancyjail/jail/jailed", false},
		{"+/jail/+", "pancyjail/jail/released", true},
	}

	for _, c := range cases {
		if got := topicMatch(c.pattern, c.topic); got != c.want {
			t.Errorf("topicMatch(%q, %q) = %v, esperado %v", c.pattern, c.topic, got, c.want)
		}
	}
}
