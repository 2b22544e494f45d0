package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BoxForge/internal/model"
)

// showAdvancedSettingsDialog opens a dialog with the full set of joint and
// layout tuning values in one place, including the ones not shown on the
// quick settings tabs.
func (a *App) showAdvancedSettingsDialog() {
	a.pushHistory("Advanced Settings")

	params := &a.project.Params
	laser := &a.project.Laser
	layoutCfg := &a.project.Layout

	// --- Finger Geometry ---
	styleNames := model.JointStyleNames()
	styleSelect := widget.NewSelect(styleNames, func(selected string) {
		for code, name := range styleNames {
			if name == selected {
				params.FingerJoint.Style = model.JointStyle(code)
			}
		}
	})
	styleSelect.SetSelected(params.FingerJoint.Style.String())

	fingerSection := widget.NewCard("Finger Geometry",
		"Finger and space widths are multiples of the material thickness",
		container.NewGridWithColumns(2,
			widget.NewLabel("Joint Style"), styleSelect,
			widget.NewLabel("Finger Width (x thickness)"), floatEntry(&params.FingerJoint.Finger),
			widget.NewLabel("Space Width (x thickness)"), floatEntry(&params.FingerJoint.Space),
			widget.NewLabel("Surrounding Spaces (x thickness)"), floatEntry(&params.FingerJoint.SurroundingSpaces),
		))

	// --- Fit Tuning ---
	fitSection := widget.NewCard("Fit Tuning",
		"Compensation for material and machine tolerances",
		container.NewGridWithColumns(2,
			widget.NewLabel("Play (mm)"), floatEntry(&params.FingerJoint.Play),
			widget.NewLabel("Extra Finger Length (mm)"), floatEntry(&params.FingerJoint.ExtraLength),
			widget.NewLabel("Dimple Height (mm)"), floatEntry(&params.FingerJoint.DimpleHeight),
			widget.NewLabel("Dimple Length (mm)"), floatEntry(&params.FingerJoint.DimpleLength),
		))

	// --- Kerf Compensation ---
	kerfSection := widget.NewCard("Kerf Compensation",
		"Half the beam width is added to every outline",
		container.NewGridWithColumns(2,
			widget.NewLabel("Kerf / Burn (mm)"), floatEntry(&params.Burn),
		))

	// --- GCode Profile ---
	profileNames := model.GetProfileNames()
	profileSelect := widget.NewSelect(profileNames, func(selected string) {
		laser.GCodeProfile = selected
	})
	profileSelect.SetSelected(laser.GCodeProfile)

	manageProfileBtn := widget.NewButtonWithIcon("Manage Profiles", theme.SettingsIcon(), func() {
		a.showProfileManager()
	})

	profileSection := widget.NewCard("GCode Profile", "",
		container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("Active Profile"), container.NewBorder(nil, nil, nil, manageProfileBtn, profileSelect),
			),
		))

	// --- Sheet Layout ---
	shelfPackCheck := widget.NewCheck("", func(b bool) { params.OptimizeLayout = b })
	shelfPackCheck.Checked = params.OptimizeLayout

	layoutSection := widget.NewCard("Sheet Layout",
		"How panels are arranged on the output sheet",
		container.NewGridWithColumns(2,
			widget.NewLabel("Panel Spacing (mm)"), floatEntry(&layoutCfg.Spacing),
			widget.NewLabel("Target Aspect Ratio (W:H)"), floatEntry(&layoutCfg.TargetAspect),
			widget.NewLabel("Shelf-Pack Panels"), shelfPackCheck,
		))

	// --- Machine Limits ---
	homeCheck := widget.NewCheck("", func(b bool) { laser.HomeFirst = b })
	homeCheck.Checked = laser.HomeFirst

	machineSection := widget.NewCard("Machine Limits", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Bed Width (mm)"), floatEntry(&laser.BedWidth),
			widget.NewLabel("Bed Height (mm)"), floatEntry(&laser.BedHeight),
			widget.NewLabel("Passes per Cut"), intEntry(&laser.LaserPasses),
			widget.NewLabel("Home Before Cutting"), homeCheck,
		))

	// Assemble all sections into a scrollable layout
	content := container.NewVScroll(container.NewVBox(
		fingerSection,
		fitSection,
		kerfSection,
		profileSection,
		layoutSection,
		machineSection,
	))

	d := dialog.NewCustom("Advanced Settings", "Close", content, a.window)
	d.SetOnClosed(func() {
		a.rebuildSettingsTabs()
	})
	d.Resize(fyne.NewSize(650, 700))
	d.Show()
}
