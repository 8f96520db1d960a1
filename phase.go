package lessongen

// BuildPhase is a stage of a build.
// Phases execute in order: Write → Render → Config
type BuildPhase int

const (
	// PhaseWrite executes every copy/text/bytes write
	PhaseWrite BuildPhase = iota

	// PhaseRender renders and writes the deferred pages.  Renders may read files
	// placed during PhaseWrite (eg the programs a trinket embed reads).
	PhaseRender

	// PhaseConfig regenerates the site config and its sidebar
	PhaseConfig
)

func (p BuildPhase) String() string {
	switch p {
	case PhaseWrite:
		return "Write"
	case PhaseRender:
		return "Render"
	case PhaseConfig:
		return "Config"
	default:
		return "Unknown"
	}
}

// BuildContext holds what a single build has done so far.
type BuildContext struct {
	Plan         *LessonPlan
	CurrentPhase BuildPhase

	// Writes executed in each phase, in execution order
	Executed map[BuildPhase][]*ResourceWrite

	hooks *HookRegistry
}

func newBuildContext(plan *LessonPlan) *BuildContext {
	return &BuildContext{
		Plan:     plan,
		Executed: make(map[BuildPhase][]*ResourceWrite),
		hooks:    plan.Hooks,
	}
}

func (ctx *BuildContext) enter(phase BuildPhase) {
	ctx.CurrentPhase = phase
	ctx.hooks.emitPhaseStart(ctx)
}

func (ctx *BuildContext) leave() {
	ctx.hooks.emitPhaseEnd(ctx)
}

func (ctx *BuildContext) written(w *ResourceWrite) {
	ctx.Executed[ctx.CurrentPhase] = append(ctx.Executed[ctx.CurrentPhase], w)
	ctx.hooks.emitWrite(ctx, w)
}

// Count returns how many writes were executed in phase.
func (ctx *BuildContext) Count(phase BuildPhase) int {
	return len(ctx.Executed[phase])
}

// HookRegistry holds callbacks for observing a build.
type HookRegistry struct {
	onPhaseStart map[BuildPhase][]func(*BuildContext)
	onPhaseEnd   map[BuildPhase][]func(*BuildContext)
	onWrite      []func(*BuildContext, *ResourceWrite)
}

func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		onPhaseStart: make(map[BuildPhase][]func(*BuildContext)),
		onPhaseEnd:   make(map[BuildPhase][]func(*BuildContext)),
	}
}

// OnPhaseStart registers a callback to run when a phase starts.
func (h *HookRegistry) OnPhaseStart(phase BuildPhase, fn func(*BuildContext)) {
	h.onPhaseStart[phase] = append(h.onPhaseStart[phase], fn)
}

// OnPhaseEnd registers a callback to run when a phase ends.
func (h *HookRegistry) OnPhaseEnd(phase BuildPhase, fn func(*BuildContext)) {
	h.onPhaseEnd[phase] = append(h.onPhaseEnd[phase], fn)
}

// OnWrite registers a callback to run after each write reaches the disk.
// For render writes the callback sees the rendered text write.
func (h *HookRegistry) OnWrite(fn func(*BuildContext, *ResourceWrite)) {
	h.onWrite = append(h.onWrite, fn)
}

func (h *HookRegistry) emitPhaseStart(ctx *BuildContext) {
	if h == nil {
		return
	}
	for _, fn := range h.onPhaseStart[ctx.CurrentPhase] {
		fn(ctx)
	}
}

func (h *HookRegistry) emitPhaseEnd(ctx *BuildContext) {
	if h == nil {
		return
	}
	for _, fn := range h.onPhaseEnd[ctx.CurrentPhase] {
		fn(ctx)
	}
}

func (h *HookRegistry) emitWrite(ctx *BuildContext, w *ResourceWrite) {
	if h == nil {
		return
	}
	for _, fn := range h.onWrite {
		fn(ctx, w)
	}
}
