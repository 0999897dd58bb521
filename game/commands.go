package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/console"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/hexgrid"
)

// modelLister is implemented by model sources that can enumerate models.
type modelLister interface {
	Names() []string
}

// RegisterCommands adds the entity commands to con and prints gameplay
// events to its log.
func (c *Context) RegisterCommands(con *console.Console) {
	c.AddNotifier(NotifierFunc(func(ev Event) {
		if ev.Kind == EventPickup || ev.Kind == EventSlashHit {
			con.Print(ev.Message())
		}
	}))

	con.Add("spawn", "spawn <model> [x y z] [scale] [life] - spawn an entity", c.cmdSpawn)
	con.Add("rm", "rm <ref|sel> - remove an entity", func(args []string) string {
		ref, err := c.refArg(args, 0)
		if err != nil {
			return err.Error()
		}
		if !c.Remove(ref) {
			return "no entity " + ref.String()
		}
		return "removed " + ref.String()
	})
	con.Add("clear", "remove all entities", func([]string) string {
		n := c.Count()
		c.Clear()
		return fmt.Sprintf("removed %d entities", n)
	})
	con.Add("count", "number of live entities", func([]string) string {
		return strconv.Itoa(c.Count())
	})
	con.Add("list", "list entities", c.cmdList)
	con.Add("select", "select <ref|none> - change the selection", func(args []string) string {
		if len(args) == 1 && args[0] == "none" {
			c.Select(ecs.NilRef)
			return "selection cleared"
		}
		ref, err := c.refArg(args, 0)
		if err != nil {
			return err.Error()
		}
		if !c.Valid(ref) {
			return "no entity " + ref.String()
		}
		c.Select(ref)
		return "selected " + ref.String()
	})
	con.Add("trait", "trait apply|remove|has <name> <ref|sel>", c.cmdTrait)
	con.Add("traits", "list registered traits", func([]string) string {
		return strings.TrimSuffix(c.traits.DescribeRegistered(), "\n")
	})
	con.Add("models", "list loaded models", func([]string) string {
		lister, ok := c.models.(modelLister)
		if !ok {
			return "model source cannot list models"
		}
		return strings.Join(lister.Names(), " ")
	})
	con.Add("flag", "flag collidable|highlightable|draggable|visible on|off <ref|sel>", c.cmdFlag)
	con.Add("vel", "vel <ref|sel> x y z - set velocity", func(args []string) string {
		ref, v, err := c.refVecArgs(args)
		if err != nil {
			return err.Error()
		}
		c.SetVelocity(ref, v)
		return "ok"
	})
	con.Add("tp", "tp <ref|sel> x y z - move an entity", func(args []string) string {
		ref, v, err := c.refVecArgs(args)
		if err != nil {
			return err.Error()
		}
		c.UpdatePosition(ref, v)
		return "ok"
	})
	con.Add("label", "label <text> [ref|sel] - spawn a floating label", func(args []string) string {
		if len(args) == 0 {
			return "Usage: label <text> [ref|sel]"
		}
		spawner := ecs.NilRef
		if len(args) > 1 {
			ref, err := c.refArg(args, 1)
			if err != nil {
				return err.Error()
			}
			spawner = ref
		}
		return c.SpawnLabel(args[0], spawner).String()
	})
	con.Add("slash", "slash <ref|sel> - cross slash around an entity", func(args []string) string {
		ref, err := c.refArg(args, 0)
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("spawned %d hitboxes", len(c.CrossSlash(ref)))
	})
	con.Add("hexgrid", "hexgrid <model> <rows> <cols> <width> <depth> - spawn a model at every hex center", c.cmdHexgrid)
}

// refArg parses args[i] as "index:generation" or "sel".
func (c *Context) refArg(args []string, i int) (ecs.Ref, error) {
	if i >= len(args) {
		return ecs.NilRef, fmt.Errorf("missing entity ref")
	}
	if args[i] == "sel" {
		sel := c.Selected()
		if sel.IsNil() {
			return ecs.NilRef, fmt.Errorf("nothing selected")
		}
		return sel, nil
	}
	return ecs.ParseRef(args[i])
}

func parseFloats(args []string) ([]float32, error) {
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (c *Context) refVecArgs(args []string) (ecs.Ref, mgl32.Vec3, error) {
	if len(args) != 4 {
		return ecs.NilRef, mgl32.Vec3{}, fmt.Errorf("expected <ref|sel> x y z")
	}
	ref, err := c.refArg(args, 0)
	if err != nil {
		return ecs.NilRef, mgl32.Vec3{}, err
	}
	if !c.Valid(ref) {
		return ecs.NilRef, mgl32.Vec3{}, fmt.Errorf("no entity %s", ref)
	}
	f, err := parseFloats(args[1:])
	if err != nil {
		return ecs.NilRef, mgl32.Vec3{}, err
	}
	return ref, mgl32.Vec3{f[0], f[1], f[2]}, nil
}

func (c *Context) cmdSpawn(args []string) string {
	if len(args) == 0 {
		return "Usage: spawn <model> [x y z] [scale] [life]"
	}
	nums, err := parseFloats(args[1:])
	if err != nil {
		return err.Error()
	}
	if len(nums) != 0 && len(nums) < 3 {
		return "position needs x y z"
	}

	spawn := SpawnArgs{Model: args[0], DebugName: args[0]}
	if len(nums) >= 3 {
		spawn.Pos = mgl32.Vec3{nums[0], nums[1], nums[2]}
	}
	if len(nums) >= 4 {
		spawn.Scale = nums[3]
	}
	if len(nums) >= 5 {
		spawn.LifeTime = Some(nums[4])
	}

	ref := c.Spawn(spawn)
	if ref.IsNil() {
		return "failed to spawn " + args[0]
	}
	return "spawned " + ref.String()
}

func (c *Context) cmdList([]string) string {
	var b strings.Builder
	for ref, e := range c.entities.All() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		p := e.Position
		fmt.Fprintf(&b, "%s %s (%.1f, %.1f, %.1f)", ref, e.DebugName, p.X(), p.Y(), p.Z())
		if traits := c.traits.Describe(e); traits != "" {
			fmt.Fprintf(&b, " [%s]", traits)
		}
		if ref == c.selected {
			b.WriteString(" *")
		}
	}
	if b.Len() == 0 {
		return "no entities"
	}
	return b.String()
}

func (c *Context) cmdTrait(args []string) string {
	if len(args) != 3 {
		return "Usage: trait apply|remove|has <name> <ref|sel>"
	}
	op, name := args[0], args[1]
	ref, err := c.refArg(args, 2)
	if err != nil {
		return err.Error()
	}
	e, ok := c.Get(ref)
	if !ok {
		return "no entity " + ref.String()
	}
	if _, known := c.traits.Find(name); !known {
		return "unknown trait " + name
	}

	switch op {
	case "apply":
		c.traits.Apply(e, name)
	case "remove":
		c.traits.Remove(e, name)
	case "has":
		return strconv.FormatBool(c.traits.Has(e, name))
	default:
		return "unknown op " + op
	}
	return c.traits.Describe(e)
}

var flagNames = map[string]Flags{
	"collidable":    FlagCollidable,
	"highlightable": FlagHighlightable,
	"draggable":     FlagDraggable,
}

func (c *Context) cmdFlag(args []string) string {
	if len(args) != 3 || (args[1] != "on" && args[1] != "off") {
		return "Usage: flag collidable|highlightable|draggable|visible on|off <ref|sel>"
	}
	ref, err := c.refArg(args, 2)
	if err != nil {
		return err.Error()
	}
	e, ok := c.Get(ref)
	if !ok {
		return "no entity " + ref.String()
	}
	on := args[1] == "on"

	if args[0] == "visible" {
		e.Render.Visible = on
		return "ok"
	}
	flag, known := flagNames[args[0]]
	if !known {
		return "unknown flag " + args[0]
	}
	if on {
		e.Flags.Set(flag)
	} else {
		e.Flags.Clear(flag)
	}
	return "ok"
}

func (c *Context) cmdHexgrid(args []string) string {
	if len(args) != 5 {
		return "Usage: hexgrid <model> <rows> <cols> <width> <depth>"
	}
	rows, err1 := strconv.Atoi(args[1])
	cols, err2 := strconv.Atoi(args[2])
	size, err3 := parseFloats(args[3:])
	if err1 != nil || err2 != nil || err3 != nil || rows <= 0 || cols <= 0 {
		return "rows and cols must be positive integers, width and depth numbers"
	}

	n, err := c.SpawnHexGrid(args[0], hexgrid.Config{Rows: rows, Cols: cols, Bounds: mgl32.Vec2{size[0], size[1]}})
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("spawned %d of %d", n, rows*cols)
}

// SpawnHexGrid spawns model at every hex center of cfg on the XZ plane,
// centered on the origin and scaled to the hex width. It returns the number
// spawned.
func (c *Context) SpawnHexGrid(model string, cfg hexgrid.Config) (int, error) {
	if !c.models.Instance(model).Valid() && model != NoModel {
		return 0, fmt.Errorf("unknown model %s", model)
	}
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return 0, fmt.Errorf("hex grid of %d x %d is empty", cfg.Rows, cfg.Cols)
	}
	if free := c.entities.Free(); cfg.Rows > free/cfg.Cols {
		return 0, fmt.Errorf("hex grid of %d x %d does not fit in %d free slots", cfg.Rows, cfg.Cols, free)
	}
	dims := hexgrid.DimsFor(cfg)
	half := cfg.Bounds.Mul(0.5)

	n := 0
	for i, p := range hexgrid.Centers(cfg, dims) {
		row, col := hexgrid.RowCol(i, cfg.Cols)
		ref := c.Spawn(SpawnArgs{
			Model:     model,
			Pos:       mgl32.Vec3{p.X() - half.X(), 0, p.Y() - half.Y()},
			Scale:     dims.Width,
			DebugName: fmt.Sprintf("hex %d,%d", row, col),
		})
		if ref.IsNil() {
			break
		}
		n++
	}
	return n, nil
}
