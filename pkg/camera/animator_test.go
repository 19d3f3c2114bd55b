package camera

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu    sync.Mutex
	poses []Pose
	final []bool
}

func (s *recordingSink) PushPose(p Pose, final bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poses = append(s.poses, p)
	s.final = append(s.final, final)
}

func (s *recordingSink) last() (Pose, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.poses) == 0 {
		return Pose{}, false
	}
	return s.poses[len(s.poses)-1], s.final[len(s.final)-1]
}

func fov(v float64) *float64 { return &v }

func testAnimator(sink PoseSink) (*Animator, *time.Time) {
	now := time.Unix(1000, 0)
	a := NewAnimator(Pose{}, sink, 16*time.Millisecond)
	a.nowFn = func() time.Time { return now }
	return a, &now
}

func TestTransitionLandsExactlyOnTarget(t *testing.T) {
	sink := &recordingSink{}
	a, now := testAnimator(sink)

	target := Pose{
		Position: Vec3{X: 1, Y: 2, Z: 3},
		Rotation: Euler{Pitch: 10, Yaw: 20, Roll: 30},
		FOV:      fov(50),
	}
	require.NoError(t, a.BeginTransition(target, time.Second))

	*now = now.Add(2 * time.Second)
	a.Advance()

	last, final := sink.last()
	assert.True(t, final)
	assert.Equal(t, target.Position, last.Position)
	assert.Equal(t, target.Rotation, last.Rotation)
	assert.Equal(t, *target.FOV, *last.FOV)

	st := a.State()
	assert.False(t, st.InProgress)
	assert.Nil(t, st.Target)
	assert.Equal(t, target.Position, st.Current.Position)
}

func TestTargetNonNilIffInProgress(t *testing.T) {
	a, now := testAnimator(&recordingSink{})

	st := a.State()
	assert.False(t, st.InProgress)
	assert.Nil(t, st.Target)

	require.NoError(t, a.BeginTransition(Pose{Position: Vec3{X: 5}}, time.Second))
	st = a.State()
	assert.True(t, st.InProgress)
	assert.NotNil(t, st.Target)

	*now = now.Add(time.Second)
	a.Advance()
	st = a.State()
	assert.False(t, st.InProgress)
	assert.Nil(t, st.Target)
}

func TestCancelMidFlightContinuesFromInterpolatedPose(t *testing.T) {
	sink := &recordingSink{}
	a, now := testAnimator(sink)

	require.NoError(t, a.BeginTransition(Pose{Position: Vec3{X: 100}}, time.Second))
	*now = now.Add(500 * time.Millisecond)
	a.Advance()

	midFlight := a.Current()
	assert.Greater(t, midFlight.Position.X, 0.0)
	assert.Less(t, midFlight.Position.X, 100.0)

	// Redirect toward a new target; the first frame of the new transition
	// must start where the old one left off, not at the original start pose.
	require.NoError(t, a.BeginTransition(Pose{Position: Vec3{X: -50}}, time.Second))
	*now = now.Add(time.Millisecond)
	a.Advance()

	last, final := sink.last()
	assert.False(t, final)
	assert.InDelta(t, midFlight.Position.X, last.Position.X, 1.0)
}

func TestAdvanceIsNoOpWhenIdle(t *testing.T) {
	sink := &recordingSink{}
	a, _ := testAnimator(sink)
	a.Advance()
	_, ok := sink.last()
	assert.False(t, ok)
}

func TestPerAxisRotationTakesLongWayAcrossWraparound(t *testing.T) {
	// 350° → 10° interpolates through 180°, not across the 0° boundary.
	from := Pose{Rotation: Euler{Yaw: 350}}
	to := Pose{Rotation: Euler{Yaw: 10}}
	mid := Lerp(from, to, 0.5)
	assert.InDelta(t, 180.0, mid.Rotation.Yaw, 1e-9)
}

func TestBeginTransitionRejectsNonFinitePose(t *testing.T) {
	a, _ := testAnimator(&recordingSink{})
	err := a.BeginTransition(Pose{Position: Vec3{X: math.NaN()}}, time.Second)
	assert.Error(t, err)
	assert.False(t, a.State().InProgress)
}

func TestOnCompleteFiresOnceWithFinalPose(t *testing.T) {
	a, now := testAnimator(&recordingSink{})
	var got []Pose
	a.SetOnComplete(func(p Pose) { got = append(got, p) })

	require.NoError(t, a.BeginTransition(Pose{Position: Vec3{Z: 7}}, time.Second))
	*now = now.Add(time.Second)
	a.Advance()
	a.Advance() // idle frame, must not re-fire

	require.Len(t, got, 1)
	assert.Equal(t, 7.0, got[0].Position.Z)
}
