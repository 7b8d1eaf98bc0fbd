package scene

import (
	"log/slog"
	"math"

	"github.com/udisondev/chasedemo/internal/ai"
	"github.com/udisondev/chasedemo/internal/commentary"
	"github.com/udisondev/chasedemo/internal/input"
	"github.com/udisondev/chasedemo/internal/model"
)

// Object IDs: the player is 1, NPCs count up from npcBaseID.
const (
	playerID  uint32 = 1
	npcBaseID uint32 = 100001

	strikeDamage int32 = 1
)

// NpcSpec places one chasing NPC.
type NpcSpec struct {
	Name     string
	Position model.Vec3
}

// Options describes a scene.
type Options struct {
	Tuning          ai.Tuning
	PlayerMoveSpeed float64
	Player          model.Vec3
	Npcs            []NpcSpec

	// Pool is shared by all NPCs; nil uses commentary.DefaultPool.
	Pool *commentary.Pool
	// Sink receives every NPC line prefixed with the speaker name.
	Sink commentary.Sink
	// IntN overrides the commentary random source.
	IntN commentary.IntNFunc
	// OnTransition observes every NPC state change.
	OnTransition ai.TransitionFunc
}

// Scene holds the player and the NPC agents, and moves the player before
// each AI tick from either the keyboard or a script.
type Scene struct {
	player *model.Actor
	agents []*ai.NpcAgent
	mgr    *ai.TickManager

	mover  input.Mover
	keys   *input.State
	script *input.ScriptedPath

	frameFns []func(model.Snapshot)
}

// New builds the scene and registers its agents and hooks on mgr.
func New(opts Options, mgr *ai.TickManager) *Scene {
	pool := opts.Pool
	if pool == nil {
		pool = commentary.DefaultPool()
	}

	s := &Scene{
		player: model.NewActor(playerID, "Sphere", opts.Player),
		mgr:    mgr,
		mover:  input.Mover{Speed: opts.PlayerMoveSpeed},
	}

	for i, spec := range opts.Npcs {
		id := npcBaseID + uint32(i)
		npc := model.NewActor(id, spec.Name, spec.Position)

		var emitterOpts []commentary.Option
		if opts.IntN != nil {
			emitterOpts = append(emitterOpts, commentary.WithIntN(opts.IntN))
		}
		emitter := commentary.NewEmitter(pool, speakerSink(spec.Name, opts.Sink), emitterOpts...)

		chase := ai.NewChaseAI(id, spec.Name, opts.Tuning, emitter)
		if opts.OnTransition != nil {
			chase.OnTransition(opts.OnTransition)
		}

		agent := ai.NewNpcAgent(npc, s.player, chase)
		s.agents = append(s.agents, agent)
		mgr.Register(agent)
	}

	mgr.BeforeTick(s.beforeTick)
	mgr.AfterTick(s.afterTick)

	slog.Info("scene ready",
		"npcs", len(s.agents),
		"sightDistance", opts.Tuning.SightDistance,
		"attackRange", opts.Tuning.AttackRange)

	return s
}

// speakerSink logs every line and forwards it to sink as "Name: text".
func speakerSink(name string, sink commentary.Sink) commentary.Sink {
	log := commentary.LogSink{Speaker: name}
	if sink == nil {
		return log
	}
	return commentary.MultiSink{
		log,
		commentary.SinkFunc(func(text string) {
			sink.Display(name + ": " + text)
		}),
	}
}

// UseKeyboard drives the player from held keys and strike requests.
func (s *Scene) UseKeyboard(keys *input.State) {
	s.keys = keys
	s.script = nil
}

// UseScript drives the player along a looping path.
func (s *Scene) UseScript(path *input.ScriptedPath) {
	s.script = path
	s.keys = nil
}

// OnFrame registers fn to receive a snapshot after every tick.
func (s *Scene) OnFrame(fn func(model.Snapshot)) {
	s.frameFns = append(s.frameFns, fn)
}

// Player returns the player actor.
func (s *Scene) Player() *model.Actor {
	return s.player
}

// Agents returns the NPC agents in creation order.
func (s *Scene) Agents() []*ai.NpcAgent {
	return s.agents
}

func (s *Scene) beforeTick(uint64) {
	pos := s.player.Position()
	switch {
	case s.keys != nil:
		s.player.SetPosition(s.mover.Step(pos, s.keys.Snapshot()))
		if s.keys.TakeStrike() {
			s.strike()
		}
	case s.script != nil:
		s.player.SetPosition(s.script.Step(pos))
	}
}

// strike swings at the nearest NPC.
func (s *Scene) strike() {
	target := s.nearest()
	if target == nil {
		return
	}
	hit := target.PlayerStrike(strikeDamage)
	slog.Debug("player strike", "target", target.Npc().Name(), "hit", hit)
}

func (s *Scene) nearest() *ai.NpcAgent {
	playerPos := s.player.Position()
	var (
		best     *ai.NpcAgent
		bestDist = math.Inf(1)
	)
	for _, a := range s.agents {
		if d := a.Npc().Position().Distance(playerPos); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

func (s *Scene) afterTick(tick uint64) {
	if len(s.frameFns) == 0 {
		return
	}
	snap := s.Snapshot(tick)
	for _, fn := range s.frameFns {
		fn(snap)
	}
}

// Snapshot captures the scene for drawing or broadcasting.
func (s *Scene) Snapshot(tick uint64) model.Snapshot {
	snap := model.Snapshot{
		Tick:   tick,
		Player: s.player.Position(),
		Npcs:   make([]model.NpcSnapshot, 0, len(s.agents)),
	}
	for _, a := range s.agents {
		npc := a.Npc()
		view := model.NpcSnapshot{
			ID:       npc.ObjectID(),
			Name:     npc.Name(),
			State:    a.State(),
			Position: npc.Position(),
		}
		if facing, ok := npc.Facing(); ok {
			view.Facing = &facing
		}
		snap.Npcs = append(snap.Npcs, view)
	}
	return snap
}
