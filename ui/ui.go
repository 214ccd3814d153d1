// Package ui is the operator front-end: one slider per servo channel,
// grouped by leg, with controls to send the current pose and to save or
// recall named poses. It only produces pose vectors and consumes status
// text; everything else happens in the transport and store packages.
package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rmb11/quadruped"
	"github.com/rmb11/quadruped/store"
	"github.com/rmb11/quadruped/transport"
)

// Channel grouping for display: consecutive channel pairs, matching the
// physical legs.
var groups = []struct {
	name     string
	channels [2]int
}{
	{"Left Hips", [2]int{0, 1}},
	{"Right Hips", [2]int{2, 3}},
	{"Left Legs", [2]int{4, 5}},
	{"Right Legs", [2]int{6, 7}},
}

// PoseUI owns the slider state and wires it to the transport and the pose
// store.
type PoseUI struct {
	sender *transport.Sender
	poses  *store.Store

	sliders [quadruped.NumChannels]*widget.Slider
	status  *widget.Label
	recall  *widget.Select
}

// New creates the front-end. The store should already be loaded.
func New(sender *transport.Sender, poses *store.Store) *PoseUI {
	return &PoseUI{sender: sender, poses: poses}
}

// Positions reads the current pose off the sliders.
func (ui *PoseUI) Positions() quadruped.Pose {
	pose := make(quadruped.Pose, quadruped.NumChannels)
	for i, slider := range ui.sliders {
		pose[i] = slider.Value
	}
	return pose
}

// SetPositions moves the sliders to the given pose without sending it.
func (ui *PoseUI) SetPositions(pose quadruped.Pose) {
	for i, slider := range ui.sliders {
		if i >= len(pose) {
			break
		}
		slider.SetValue(pose[i])
	}
}

func (ui *PoseUI) setStatus(format string, args ...any) {
	ui.status.SetText(fmt.Sprintf(format, args...))
}

func (ui *PoseUI) send() {
	if err := ui.sender.Send(ui.Positions()); err != nil {
		ui.setStatus("send failed: %v", err)
		return
	}
	ui.setStatus("pose sent to %s", ui.sender.Port)
}

func (ui *PoseUI) save(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		ui.setStatus("enter a pose name before saving")
		return
	}
	if err := ui.poses.Set(name, ui.Positions()); err != nil {
		ui.setStatus("save failed: %v", err)
		return
	}
	ui.recall.Options = ui.poses.Names()
	ui.recall.Refresh()
	ui.setStatus("pose %q saved", name)
}

func (ui *PoseUI) load(name string) {
	pose, ok := ui.poses.Get(name)
	if !ok {
		ui.setStatus("pose %q not found", name)
		return
	}
	ui.SetPositions(pose)
	ui.setStatus("pose %q loaded", name)
}

// channelSlider builds the label+value+slider row for one servo channel.
func (ui *PoseUI) channelSlider(channel int, labelText string) *fyne.Container {
	defaultValue := 90.0
	valueLabel := widget.NewLabel(fmt.Sprintf("%.0f", defaultValue))

	slider := widget.NewSlider(0, 180)
	slider.Step = 1
	slider.SetValue(defaultValue)
	slider.OnChanged = func(value float64) {
		valueLabel.SetText(fmt.Sprintf("%.0f", value))
	}
	ui.sliders[channel] = slider

	return container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel(labelText),
			valueLabel,
		),
		slider,
	)
}

func (ui *PoseUI) legCard(name string, channels [2]int) *widget.Card {
	labels := quadruped.AllChannels()
	return widget.NewCard(name, "", container.NewVBox(
		ui.channelSlider(channels[0], string(labels[channels[0]])),
		ui.channelSlider(channels[1], string(labels[channels[1]])),
	))
}

// Run builds the window and blocks until it is closed or ctx is cancelled.
func (ui *PoseUI) Run(ctx context.Context) {
	application := app.New()
	window := application.NewWindow("Quadruped Poses")

	ui.status = widget.NewLabel("")
	ui.recall = widget.NewSelect(ui.poses.Names(), nil)

	legGrid := container.NewGridWithColumns(2)
	for _, group := range groups {
		legGrid.Add(ui.legCard(group.name, group.channels))
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("pose name")
	saveButton := widget.NewButton("Save", func() {
		ui.save(nameEntry.Text)
	})

	loadButton := widget.NewButton("Load", func() {
		if ui.recall.Selected == "" {
			ui.setStatus("select a pose to load")
			return
		}
		ui.load(ui.recall.Selected)
	})

	sendButton := widget.NewButton("Send Pose", ui.send)

	content := container.NewVBox(
		legGrid,
		container.NewGridWithColumns(3,
			nameEntry,
			saveButton,
			sendButton,
		),
		container.NewGridWithColumns(2,
			ui.recall,
			loadButton,
		),
		ui.status,
	)

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	window.SetContent(content)
	window.Resize(fyne.NewSize(520, 480))
	window.ShowAndRun()
}
