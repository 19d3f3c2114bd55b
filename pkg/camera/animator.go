package camera

import (
	"context"
	"sync"
	"time"
)

// PoseSink receives every interpolated pose the animator produces. The hub
// implements this to feed connected renderer clients; final is true exactly
// once per transition, on the frame that lands on the target.
type PoseSink interface {
	PushPose(pose Pose, final bool)
}

// TransitionState is a snapshot of the viewpoint store.
// Target is non-nil if and only if InProgress is true.
type TransitionState struct {
	Current    Pose  `json:"current"`
	Target     *Pose `json:"target,omitempty"`
	InProgress bool  `json:"in_progress"`
}

// Animator owns the current and target camera poses and drives transitions
// between them. It is the single writer of pose state; everything else reads
// snapshots. All state changes go through BeginTransition, SetPose and the
// per-frame advance.
type Animator struct {
	mu         sync.Mutex
	sink       PoseSink
	tick       time.Duration
	nowFn      func() time.Time
	onComplete func(Pose)

	current    Pose
	target     *Pose
	inProgress bool
	from       Pose
	startedAt  time.Time
	duration   time.Duration
}

func NewAnimator(initial Pose, sink PoseSink, tick time.Duration) *Animator {
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	return &Animator{
		sink:    sink,
		tick:    tick,
		nowFn:   time.Now,
		current: initial,
	}
}

// SetOnComplete registers a callback invoked with the final pose when a
// transition finishes naturally (not when it is replaced mid-flight).
func (a *Animator) SetOnComplete(fn func(Pose)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onComplete = fn
}

// BeginTransition starts interpolating toward `to` over `duration`. If a
// transition is already in progress it is abandoned and the new one starts
// from the last interpolated pose, so the camera never jumps.
func (a *Animator) BeginTransition(to Pose, duration time.Duration) error {
	if err := to.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.from = a.current
	target := to
	a.target = &target
	a.inProgress = true
	a.startedAt = a.nowFn()
	a.duration = duration
	return nil
}

// SetPose replaces the current pose immediately, cancelling any transition.
// Used when a display config is activated and at session start.
func (a *Animator) SetPose(p Pose) error {
	if err := p.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = p
	a.target = nil
	a.inProgress = false
	return nil
}

// State returns a snapshot of the store.
func (a *Animator) State() TransitionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := TransitionState{Current: a.current, InProgress: a.inProgress}
	if a.target != nil {
		t := *a.target
		st.Target = &t
	}
	return st
}

// Current returns the last interpolated pose.
func (a *Animator) Current() Pose {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Run drives the frame loop until the context is cancelled. Idle ticks (no
// transition in progress) are free: nothing is pushed to the sink.
func (a *Animator) Run(ctx context.Context) {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Advance()
		}
	}
}

// Advance computes one frame. Exposed so the run loop and tests share the
// exact same stepping code.
func (a *Animator) Advance() {
	a.mu.Lock()
	if !a.inProgress || a.target == nil {
		a.mu.Unlock()
		return
	}

	elapsed := a.nowFn().Sub(a.startedAt)
	t := 1.0
	if a.duration > 0 {
		t = float64(elapsed) / float64(a.duration)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	final := t >= 1
	var pose Pose
	if final {
		pose = *a.target
		a.target = nil
		a.inProgress = false
	} else {
		pose = Lerp(a.from, *a.target, EaseInOutCubic(t))
	}
	a.current = pose
	sink := a.sink
	onComplete := a.onComplete
	a.mu.Unlock()

	if sink != nil {
		sink.PushPose(pose, final)
	}
	if final && onComplete != nil {
		onComplete(pose)
	}
}
