package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/game"
)

// ModelLister is satisfied by *assets.Store.
type ModelLister interface {
	Names() []string
}

// EntityRow is one line of the entity table.
type EntityRow struct {
	Ref      ecs.Ref
	Name     string
	Position mgl32.Vec3
	Traits   string
	Selected bool
}

// ScenePanel lists models and entities, and edits the selected entity.
type ScenePanel struct {
	ctx    *game.Context
	models ModelLister

	filter  string
	spawnAt [3]float32
	label   string
}

func NewScenePanel(ctx *game.Context, models ModelLister) *ScenePanel {
	return &ScenePanel{ctx: ctx, models: models}
}

// SetFilter restricts Rows to entities whose ref, name or traits contain
// text, ignoring case.
func (sp *ScenePanel) SetFilter(text string) { sp.filter = text }

// Rows returns the live entities in slot order, filtered.
func (sp *ScenePanel) Rows() []EntityRow {
	selected := sp.ctx.Selected()
	needle := strings.ToLower(sp.filter)

	rows := make([]EntityRow, 0, sp.ctx.Count())
	for ref, e := range sp.ctx.Entities().All() {
		row := EntityRow{
			Ref:      ref,
			Name:     e.Name(),
			Position: e.Position,
			Traits:   strings.TrimSpace(sp.ctx.Traits().Describe(e)),
			Selected: ref == selected,
		}
		if needle != "" &&
			!strings.Contains(ref.String(), needle) &&
			!strings.Contains(strings.ToLower(row.Name), needle) &&
			!strings.Contains(strings.ToLower(row.Traits), needle) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// SpawnModel spawns name at the panel's spawn position.
func (sp *ScenePanel) SpawnModel(name string) ecs.Ref {
	return sp.ctx.Spawn(game.SpawnArgs{Model: name, Pos: mgl32.Vec3(sp.spawnAt)})
}

func (sp *ScenePanel) Render(float32) {
	if !imgui.BeginV("Scene", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sp.renderModels()
	imgui.Separator()
	sp.renderEntities()
	imgui.Separator()
	sp.renderSelected()

	if imgui.TreeNodeStr("Traits") {
		for _, entry := range sp.ctx.Traits().Entries() {
			imgui.BulletText(fmt.Sprintf("%d %s", entry.Slot, entry.Name))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (sp *ScenePanel) renderModels() {
	imgui.Text("Spawn at")
	imgui.SameLine()
	imgui.SetNextItemWidth(200)
	imgui.InputFloat3("##spawnat", &sp.spawnAt)

	for i, name := range sp.models.Names() {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.Button(name) {
			sp.SpawnModel(name)
		}
	}
}

func (sp *ScenePanel) renderEntities() {
	imgui.InputTextWithHint("##filter", "Filter...", &sp.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		sp.filter = ""
	}

	rows := sp.Rows()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Entities", 4, tableFlags, imgui.NewVec2(0, 240), 0) {
		imgui.TableSetupColumn("Ref")
		imgui.TableSetupColumn("Model")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Traits")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.Ref.String(), row.Selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sp.ctx.Select(row.Ref)
			}
			imgui.TableNextColumn()
			imgui.Text(row.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f %.1f %.1f", row.Position.X(), row.Position.Y(), row.Position.Z()))
			imgui.TableNextColumn()
			imgui.Text(row.Traits)
		}
		imgui.EndTable()
	}
	imgui.Text(fmt.Sprintf("Total: %d of %d entities", len(rows), sp.ctx.Count()))
}

func (sp *ScenePanel) renderSelected() {
	ref := sp.ctx.Selected()
	e, ok := sp.ctx.Get(ref)
	if !ok {
		imgui.Text("No entity selected")
		return
	}

	imgui.Text(fmt.Sprintf("Selected %s (%s)", ref, e.Name()))

	pos := [3]float32(e.Position)
	if imgui.InputFloat3("Position", &pos) {
		sp.ctx.UpdatePosition(ref, mgl32.Vec3(pos))
	}
	var vel [3]float32
	if v, set := e.Velocity.Get(); set {
		vel = [3]float32(v)
	}
	if imgui.InputFloat3("Velocity", &vel) {
		sp.ctx.SetVelocity(ref, mgl32.Vec3(vel))
	}
	imgui.InputFloat("Scale", &e.Scale)

	for _, f := range []struct {
		name string
		flag game.Flags
	}{
		{"Collidable", game.FlagCollidable},
		{"Highlightable", game.FlagHighlightable},
		{"Draggable", game.FlagDraggable},
	} {
		on := e.Flags.Has(f.flag)
		if imgui.Checkbox(f.name, &on) {
			if on {
				e.Flags.Set(f.flag)
			} else {
				e.Flags.Clear(f.flag)
			}
		}
	}
	imgui.Checkbox("Visible", &e.Render.Visible)

	if imgui.TreeNodeStr("Traits##selected") {
		for _, entry := range sp.ctx.Traits().Entries() {
			on := sp.ctx.Traits().Has(e, entry.Name)
			if imgui.Checkbox(entry.Name, &on) {
				if on {
					sp.ctx.Traits().Apply(e, entry.Name)
				} else {
					sp.ctx.Traits().Remove(e, entry.Name)
				}
			}
		}
		imgui.TreePop()
	}

	imgui.InputTextWithHint("##label", "Label text", &sp.label, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Label") && sp.label != "" {
		sp.ctx.SpawnLabel(sp.label, ref)
	}
	if imgui.Button("Cross Slash") {
		sp.ctx.CrossSlash(ref)
	}
	imgui.SameLine()
	if imgui.Button("Remove") {
		sp.ctx.Remove(ref)
	}
}
