package skyb

import (
	"github.com/dronecore/skyb/container"
	"github.com/dronecore/skyb/errs"
	"github.com/dronecore/skyb/events"
	"github.com/dronecore/skyb/internal/pool"
	"github.com/dronecore/skyb/light"
	"github.com/dronecore/skyb/rth"
	"github.com/dronecore/skyb/stats"
	"github.com/dronecore/skyb/trajectory"
	"github.com/dronecore/skyb/yaw"
)

// Show is a fully decoded drone-show program: the trajectory, light,
// yaw, and event streams found in a container buffer, plus any RTH
// plan entries, each exposed through its own player.
type Show struct {
	trajectory  *trajectory.Trajectory
	trajPlayer  *trajectory.Player
	lightProg   *light.Program
	lightPlayer *light.Player
	yawCtrl     *yaw.Control
	yawPlayer   *yaw.Player
	eventList   *events.List
	eventPlayer *events.Player
	rthEntries  []rth.Entry

	statsConfig stats.Config
	statsCache  *stats.Stats
}

// Open parses data as a show container and decodes every stream block
// it finds. A trajectory block is required; light, yaw, events, and an
// RTH plan are all optional, mirroring the teacher's single-call
// decode facade adapted to this format's multi-stream container.
func Open(data []byte, opts ...Option) (*Show, error) {
	cfg := config{statsConfig: stats.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var containerOpts []container.Option
	if cfg.log != nil {
		containerOpts = append(containerOpts, container.WithLogger(cfg.log))
	}
	parser, err := container.NewFromBuffer(data, containerOpts...)
	if err != nil {
		return nil, err
	}

	show := &Show{statsConfig: cfg.statsConfig}

	trajBody, err := findBlockBody(parser, container.TypeTrajectory)
	if err != nil {
		return nil, errs.Wrap(errs.PARSE, err, "skyb: trajectory block required")
	}
	if trajBody == nil {
		return nil, errs.New(errs.NOENT, "skyb: no trajectory block in container")
	}
	traj, err := trajectory.Decode(trajBody)
	pool.Put(trajBody)
	if err != nil {
		return nil, err
	}
	show.trajectory = traj
	var trajOpts []trajectory.Option
	if cfg.log != nil {
		trajOpts = append(trajOpts, trajectory.WithLogger(cfg.log))
	}
	show.trajPlayer = trajectory.NewPlayer(traj, trajOpts...)

	if body, err := findBlockBody(parser, container.TypeLight); err != nil {
		return nil, err
	} else if body != nil {
		prog, err := light.Decode(body)
		pool.Put(body)
		if err != nil {
			return nil, err
		}
		show.lightProg = prog
		var lightOpts []light.Option
		if cfg.log != nil {
			lightOpts = append(lightOpts, light.WithLogger(cfg.log))
		}
		show.lightPlayer = light.NewPlayer(prog, lightOpts...)
	}

	if body, err := findBlockBody(parser, container.TypeYaw); err != nil {
		return nil, err
	} else if body != nil {
		ctrl, err := yaw.Decode(body)
		pool.Put(body)
		if err != nil {
			return nil, err
		}
		show.yawCtrl = ctrl
		show.yawPlayer = yaw.NewPlayer(ctrl)
	}

	if body, err := findBlockBody(parser, container.TypeEvents); err != nil {
		return nil, err
	} else if body != nil {
		list, err := events.Decode(body)
		pool.Put(body)
		if err != nil {
			return nil, err
		}
		show.eventList = list
		show.eventPlayer = events.NewPlayer(list)
	}

	if body, err := findBlockBody(parser, container.TypeRTHPlan); err != nil {
		return nil, err
	} else if body != nil {
		plan, err := rth.Decode(body)
		pool.Put(body)
		if err != nil {
			return nil, err
		}
		show.rthEntries = plan
	}

	return show, nil
}

// findBlockBody locates the first block of type t and returns an owned
// copy of its body, or nil if the container has no such block.
func findBlockBody(p *container.Parser, t container.BlockType) ([]byte, error) {
	if err := p.FindFirstBlockByType(t); err != nil {
		if errs.Of(err) == errs.NOENT {
			return nil, nil
		}
		return nil, err
	}
	return p.BorrowCurrentBlock()
}

// Trajectory returns the show's trajectory player.
func (s *Show) Trajectory() *trajectory.Player { return s.trajPlayer }

// Light returns the show's light-program player, or nil if the
// container carried no light block.
func (s *Show) Light() *light.Player { return s.lightPlayer }

// Yaw returns the show's yaw-control player, or nil if the container
// carried no yaw block.
func (s *Show) Yaw() *yaw.Player { return s.yawPlayer }

// Events returns the show's event-list player, or nil if the
// container carried no events block.
func (s *Show) Events() *events.Player { return s.eventPlayer }

// Stats computes (and caches) the aggregate trajectory statistics for
// this show's trajectory, per the configured stats.Config.
func (s *Show) Stats() stats.Stats {
	if s.statsCache == nil {
		computed := stats.Calculate(s.trajectory, s.statsConfig)
		s.statsCache = &computed
	}
	return *s.statsCache
}

// RTHPlan returns the show's RTH-plan entries, or nil if the container
// carried no RTH-plan block.
func (s *Show) RTHPlan() []rth.Entry { return s.rthEntries }

// SynthesizeRTHTrajectory converts the i'th RTH-plan entry into a
// playable trajectory, per rth.Synthesize.
func (s *Show) SynthesizeRTHTrajectory(i int) (*trajectory.Player, error) {
	if i < 0 || i >= len(s.rthEntries) {
		return nil, errs.New(errs.INVAL, "skyb: rth entry index %d out of range", i)
	}
	traj, err := rth.Synthesize(s.rthEntries[i])
	if err != nil {
		return nil, err
	}
	return trajectory.NewPlayer(traj), nil
}
