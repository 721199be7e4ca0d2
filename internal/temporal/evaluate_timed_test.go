package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func letterTrace() *Trace[rune] {
	return MustTrace(
		TraceEvent[rune]{Timestamp: ms(0), Value: 'a'},
		TraceEvent[rune]{Timestamp: ms(100), Value: 'b'},
		TraceEvent[rune]{Timestamp: ms(300), Value: 'c'},
		TraceEvent[rune]{Timestamp: ms(600), Value: 'd'},
		TraceEvent[rune]{Timestamp: ms(1000), Value: 'e'},
	)
}

func letter(r rune) Formula[rune] {
	return State("is"+string(r), func(s rune) bool { return s == r })
}

func TestEventuallyWithin(t *testing.T) {
	tr := letterTrace()

	res := Evaluate(tr, EventuallyWithin(letter('b'), Between(0, ms(150))), 0)
	require.True(t, res.Holds)
	assert.Equal(t, 1, *res.Index)

	res = Evaluate(tr, EventuallyWithin(letter('b'), Between(0, ms(50))), 0)
	assert.False(t, res.Holds)
	assert.Contains(t, res.Reason, "never held within [0s,50ms]")
}

func TestEventuallyWithin_IgnoresWitnessBeforeLowerBound(t *testing.T) {
	tr := letterTrace()

	assert.False(t, Evaluate(tr, EventuallyWithin(letter('b'), Between(ms(200), ms(700))), 0).Holds)
	assert.True(t, Evaluate(tr, EventuallyWithin(letter('d'), Between(ms(200), ms(700))), 0).Holds)
	assert.True(t, Evaluate(tr, EventuallyWithin(letter('e'), AtLeast(ms(500))), 0).Holds)
}

func TestEventuallyWithin_OffsetsAreRelativeToStart(t *testing.T) {
	tr := letterTrace()

	// From 'c' at 300ms, 'd' is 300ms away.
	assert.True(t, Evaluate(tr, EventuallyWithin(letter('d'), Exactly(ms(300))), 2).Holds)
	assert.False(t, Evaluate(tr, EventuallyWithin(letter('d'), Exactly(ms(300))), 1).Holds)
}

func TestAlwaysWithin(t *testing.T) {
	tr := letterTrace()
	notE := Not(letter('e'))

	assert.True(t, Evaluate(tr, AlwaysWithin(notE, Between(0, ms(600))), 0).Holds)

	res := Evaluate(tr, AlwaysWithin(notE, Between(0, ms(1000))), 0)
	require.False(t, res.Holds)
	require.NotNil(t, res.Timestamp)
	assert.Equal(t, 4, *res.Index)
	assert.Equal(t, ms(1000), *res.Timestamp)
}

func TestAlwaysWithin_NoEventInIntervalIsVacuous(t *testing.T) {
	tr := letterTrace()
	assert.True(t, Evaluate(tr, AlwaysWithin(False[rune](), Between(ms(10), ms(90))), 0).Holds)
}

func TestTimedOperators_PastTraceEnd(t *testing.T) {
	tr := letterTrace()
	end := tr.Len()
	iv := UpTo(time.Second)

	assert.False(t, Evaluate(tr, EventuallyWithin(True[rune](), iv), end).Holds)
	assert.True(t, Evaluate(tr, AlwaysWithin(False[rune](), iv), end).Holds)
	assert.False(t, Evaluate(tr, UntilWithin(True[rune](), True[rune](), iv), end).Holds)
}

func TestUntilWithin(t *testing.T) {
	p := letter('p')
	q := letter('q')
	tr := MustTrace(
		TraceEvent[rune]{Timestamp: 0, Value: 'p'},
		TraceEvent[rune]{Timestamp: time.Second, Value: 'p'},
		TraceEvent[rune]{Timestamp: 2 * time.Second, Value: 'q'},
	)

	res := Evaluate(tr, UntilWithin(p, q, UpTo(3*time.Second)), 0)
	require.True(t, res.Holds)
	assert.Equal(t, 2, *res.Index)

	res = Evaluate(tr, UntilWithin(p, q, UpTo(time.Second)), 0)
	assert.False(t, res.Holds)
	assert.Contains(t, res.Reason, "right operand never held within")
}

func TestUntilWithin_LeftMustHoldBeforeInterval(t *testing.T) {
	p := letter('p')
	q := letter('q')
	tr := MustTrace(
		TraceEvent[rune]{Timestamp: 0, Value: 'p'},
		TraceEvent[rune]{Timestamp: ms(500), Value: 'q'},
		TraceEvent[rune]{Timestamp: ms(1000), Value: 'p'},
		TraceEvent[rune]{Timestamp: ms(2000), Value: 'q'},
	)

	res := Evaluate(tr, UntilWithin(p, q, Between(ms(1500), ms(3000))), 0)
	require.False(t, res.Holds)
	assert.Equal(t, 1, *res.Index)
	assert.Contains(t, res.Reason, "left operand failed")
}

func TestWeakUntilWithin(t *testing.T) {
	p := letter('p')
	q := letter('q')
	tr := MustTrace(
		TraceEvent[rune]{Timestamp: 0, Value: 'p'},
		TraceEvent[rune]{Timestamp: ms(100), Value: 'p'},
		TraceEvent[rune]{Timestamp: ms(900), Value: 'x'},
	)
	iv := UpTo(ms(500))

	assert.False(t, Evaluate(tr, UntilWithin(p, q, iv), 0).Holds)
	assert.True(t, Evaluate(tr, WeakUntilWithin(p, q, iv), 0).Holds)
	assert.False(t, Evaluate(tr, WeakUntilWithin(p, q, UpTo(time.Second)), 0).Holds)
}

func TestReleaseWithin(t *testing.T) {
	p := letter('p')
	ok := State("ok", func(s rune) bool { return s != 'x' })
	tr := MustTrace(
		TraceEvent[rune]{Timestamp: 0, Value: 'a'},
		TraceEvent[rune]{Timestamp: ms(100), Value: 'p'},
		TraceEvent[rune]{Timestamp: ms(200), Value: 'x'},
	)

	assert.True(t, Evaluate(tr, ReleaseWithin(p, ok, UpTo(time.Second)), 0).Holds)
	assert.True(t, Evaluate(tr, ReleaseWithin(letter('z'), ok, UpTo(ms(150))), 0).Holds)
	assert.False(t, Evaluate(tr, ReleaseWithin(letter('z'), ok, UpTo(time.Second)), 0).Holds)
}

type message struct {
	kind string
}

func TestNestedTimedOperatorReanchors(t *testing.T) {
	request := Event("request", func(m message) bool { return m.kind == "request" })
	response := Event("response", func(m message) bool { return m.kind == "response" })
	property := Always(Implies(request, EventuallyWithin(response, UpTo(5*time.Second))))

	ok := MustTrace(
		TraceEvent[message]{Timestamp: 0, Value: message{"request"}},
		TraceEvent[message]{Timestamp: 2 * time.Second, Value: message{"response"}},
		TraceEvent[message]{Timestamp: 10 * time.Second, Value: message{"request"}},
		TraceEvent[message]{Timestamp: 13 * time.Second, Value: message{"response"}},
	)
	assert.True(t, Evaluate(ok, property, 0).Holds)

	late := MustTrace(
		TraceEvent[message]{Timestamp: 0, Value: message{"request"}},
		TraceEvent[message]{Timestamp: 2 * time.Second, Value: message{"response"}},
		TraceEvent[message]{Timestamp: 10 * time.Second, Value: message{"request"}},
		TraceEvent[message]{Timestamp: 16 * time.Second, Value: message{"response"}},
	)
	res := Evaluate(late, property, 0)
	require.False(t, res.Holds)
	assert.Equal(t, 2, *res.Index)
	assert.Equal(t, 10*time.Second, *res.Timestamp)
	assert.Contains(t, res.Reason, "response")
}
