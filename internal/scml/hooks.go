package scml

import "spriter-scml/internal/spriter"

// Hooks are optional callbacks run at phase boundaries of a load, e.g. to
// drive a progress display. Nil fields are skipped. Callbacks must not
// modify what they are handed.
type Hooks struct {
	FolderLoaded    func(*spriter.Folder)
	EntityLoaded    func(*spriter.Entity)
	AnimationLoaded func(*spriter.Entity, *spriter.Animation)
	// Warning receives tolerated problems. Without it they are dropped.
	Warning func(Warning)
}

func (h Hooks) folderLoaded(f *spriter.Folder) {
	if h.FolderLoaded != nil {
		h.FolderLoaded(f)
	}
}

func (h Hooks) entityLoaded(e *spriter.Entity) {
	if h.EntityLoaded != nil {
		h.EntityLoaded(e)
	}
}

func (h Hooks) animationLoaded(e *spriter.Entity, a *spriter.Animation) {
	if h.AnimationLoaded != nil {
		h.AnimationLoaded(e, a)
	}
}

func (h Hooks) warn(w Warning) {
	if h.Warning != nil {
		h.Warning(w)
	}
}
