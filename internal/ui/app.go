package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BoxForge/internal/engine"
	"github.com/piwi3910/BoxForge/internal/export"
	"github.com/piwi3910/BoxForge/internal/gcode"
	boximporter "github.com/piwi3910/BoxForge/internal/importer"
	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
	"github.com/piwi3910/BoxForge/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	project model.Project
	config  model.AppConfig
	history *History
	tabs    *container.AppTabs

	materials []model.MaterialPreset

	// UI references for dynamic updates
	boxTab            *container.TabItem
	jointsTab         *container.TabItem
	laserTab          *container.TabItem
	layoutContainer   *fyne.Container
	toolpathContainer *fyne.Container
}

func NewApp(window fyne.Window) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fmt.Printf("Could not load app config: %v\n", err)
		config = model.DefaultAppConfig()
	}

	a := &App{
		window:  window,
		config:  config,
		history: NewHistory(),
	}
	a.project = a.newProject()

	// Custom GCode profiles saved by earlier sessions become selectable
	// alongside the built-ins.
	if _, err := project.LoadAllProfiles(); err != nil {
		fmt.Printf("Could not load custom GCode profiles: %v\n", err)
	}

	return a
}

// newProject creates a project seeded with the saved defaults.
func (a *App) newProject() model.Project {
	proj := model.NewProject()
	a.config.ApplyToParameters(&proj.Params)
	a.config.ApplyToLaser(&proj.Laser)
	if a.config.DefaultMaterial != "" {
		if m := project.FindMaterialByName(a.loadMaterials(), a.config.DefaultMaterial); m != nil {
			m.ApplyToParameters(&proj.Params)
			m.ApplyToLaser(&proj.Laser)
		}
	}
	return proj
}

// loadMaterials loads the material preset library on first use.
func (a *App) loadMaterials() []model.MaterialPreset {
	if a.materials == nil {
		materials, _, err := project.LoadOrCreateMaterials()
		if err != nil {
			fmt.Printf("Could not load material presets: %v\n", err)
		}
		a.materials = materials
	}
	return a.materials
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.pushHistory("New Project")
			a.project = a.newProject()
			a.rebuildSettingsTabs()
			a.refreshResults()
			a.refreshToolpath()
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProject()
		}),
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Panels from DXF...", func() {
			a.importDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export SVG...", func() {
			a.exportBoxFile(a.project.Name+".svg", export.ExportSVG)
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportBoxFile(a.project.Name+".dxf", export.ExportDXF)
		}),
		fyne.NewMenuItem("Export PDF...", func() {
			a.exportBoxFile(a.project.Name+".pdf", func(path string, box model.Box) error {
				return export.ExportPDF(path, box, a.project.Laser)
			})
		}),
		fyne.NewMenuItem("Export GCode...", func() {
			a.exportGCode()
		}),
		fyne.NewMenuItem("Export Panel Labels (PDF)...", func() {
			a.exportBoxFile(a.project.Name+"-labels.pdf", export.ExportLabelsPDF)
		}),
		fyne.NewMenuItem("Export Cut List (Excel)...", func() {
			a.exportBoxFile(a.project.Name+"-cutlist.xlsx", export.ExportCutListXLSX)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Settings to Defaults", func() {
			a.pushHistory("Reset Settings")
			a.project.Params = model.DefaultBoxParameters()
			a.project.Laser = model.DefaultLaserSettings()
			a.project.Layout = model.DefaultLayoutConfig()
			a.rebuildSettingsTabs()
		}),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Generate Box", func() {
			a.generateBox()
			a.tabs.SelectIndex(3) // Switch to Layout tab
		}),
		fyne.NewMenuItem("Verify Layout", func() {
			a.verifyLayout()
		}),
		fyne.NewMenuItem("Compare Layouts...", func() {
			a.showCompareDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("GCode Profiles...", func() {
			a.showProfileManager()
		}),
		fyne.NewMenuItem("Materials...", func() {
			a.showMaterialManager()
		}),
		fyne.NewMenuItem("Templates...", func() {
			a.showTemplateManager()
		}),
		fyne.NewMenuItem("Advanced Settings...", func() {
			a.showAdvancedSettingsDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Backup / Restore...", func() {
			a.showImportExportDialog()
		}),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	// Set the main menu
	mainMenu := fyne.NewMainMenu(
		fileMenu,
		editMenu,
		toolsMenu,
		helpMenu,
	)
	a.window.SetMainMenu(mainMenu)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About BoxForge",
		"BoxForge — Parametric Box Generator\n\n"+
			"A cross-platform desktop application for generating\n"+
			"finger-jointed boxes as SVG, DXF, PDF and laser GCode.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.applyConfigTheme()

	// Main tabs
	a.boxTab = container.NewTabItem("Box", a.buildBoxPanel())
	a.jointsTab = container.NewTabItem("Joints", a.buildJointsPanel())
	a.laserTab = container.NewTabItem("Laser", a.buildLaserPanel())
	layoutTab := container.NewTabItem("Layout", a.buildLayoutPanel())
	toolpathTab := container.NewTabItem("Toolpath", a.buildToolpathPanel())

	a.tabs = container.NewAppTabs(a.boxTab, a.jointsTab, a.laserTab, layoutTab, toolpathTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// rebuildSettingsTabs re-creates the settings tab contents so the entry
// widgets pick up values replaced wholesale by undo, load or a preset.
func (a *App) rebuildSettingsTabs() {
	if a.tabs == nil {
		return
	}
	a.boxTab.Content = a.buildBoxPanel()
	a.jointsTab.Content = a.buildJointsPanel()
	a.laserTab.Content = a.buildLaserPanel()
	a.tabs.Refresh()
}

// ─── Entry Helpers ─────────────────────────────────────────

// floatEntry creates an entry bound to a float64 field.
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(*val, 'g', -1, 64))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			*val = v
		}
	}
	return e
}

// intEntry creates an entry bound to an int field.
func intEntry(val *int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf("%d", *val))
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			*val = v
		}
	}
	return e
}

// ─── Box Panel ─────────────────────────────────────────────

func (a *App) buildBoxPanel() fyne.CanvasObject {
	p := &a.project.Params

	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	nameEntry.OnChanged = func(text string) {
		a.project.Name = text
	}

	outsideCheck := widget.NewCheck("", func(b bool) { p.Outside = b })
	outsideCheck.Checked = p.Outside

	projectSection := widget.NewCard("Project", "", container.NewGridWithColumns(2,
		widget.NewLabel("Name"), nameEntry,
		widget.NewLabel("Material Preset"), a.buildMaterialSelector(),
	))

	dimensionsSection := widget.NewCard("Dimensions", "", container.NewGridWithColumns(2,
		widget.NewLabel("Width X (mm)"), floatEntry(&p.X),
		widget.NewLabel("Depth Y (mm)"), floatEntry(&p.Y),
		widget.NewLabel("Height H (mm)"), floatEntry(&p.H),
		widget.NewLabel("Material Thickness (mm)"), floatEntry(&p.Thickness),
		widget.NewLabel("Measure Outside"), outsideCheck,
	))

	typeSection := widget.NewCard("Box Type", "", container.NewGridWithColumns(2,
		widget.NewLabel("Walls"), a.buildBoxTypeSelector(),
		widget.NewLabel("Dividers along X"), intEntry(&p.DividersX),
		widget.NewLabel("Dividers along Y"), intEntry(&p.DividersY),
	))

	return container.NewVScroll(container.NewVBox(
		projectSection,
		dimensionsSection,
		typeSection,
	))
}

func (a *App) buildBoxTypeSelector() *widget.Select {
	names := model.BoxTypeNames()
	selector := widget.NewSelect(names, func(selected string) {
		for code, name := range names {
			if name == selected {
				a.project.Params.BoxType = model.BoxType(code)
				break
			}
		}
	})
	selector.SetSelected(a.project.Params.BoxType.String())
	return selector
}

func (a *App) buildMaterialSelector() *widget.Select {
	names := project.MaterialNames(a.loadMaterials())
	selector := widget.NewSelect(names, func(selected string) {
		m := project.FindMaterialByName(a.loadMaterials(), selected)
		if m == nil {
			return
		}
		a.pushHistory("Apply Material " + m.Name)
		m.ApplyToParameters(&a.project.Params)
		m.ApplyToLaser(&a.project.Laser)
		a.rebuildSettingsTabs()
	})
	selector.PlaceHolder = "Apply a material preset..."
	return selector
}

// ─── Joints Panel ──────────────────────────────────────────

func (a *App) buildJointsPanel() fyne.CanvasObject {
	fj := &a.project.Params.FingerJoint

	jointSection := widget.NewCard("Finger Joints", "", container.NewGridWithColumns(2,
		widget.NewLabel("Joint Style"), a.buildJointStyleSelector(),
		widget.NewLabel("Finger Width (x thickness)"), floatEntry(&fj.Finger),
		widget.NewLabel("Space Width (x thickness)"), floatEntry(&fj.Space),
		widget.NewLabel("Surrounding Spaces (x thickness)"), floatEntry(&fj.SurroundingSpaces),
	))

	fitSection := widget.NewCard("Fit Tuning", "", container.NewGridWithColumns(2,
		widget.NewLabel("Play (x thickness)"), floatEntry(&fj.Play),
		widget.NewLabel("Extra Finger Length (x thickness)"), floatEntry(&fj.ExtraLength),
		widget.NewLabel("Dimple Height (mm)"), floatEntry(&fj.DimpleHeight),
		widget.NewLabel("Dimple Length (mm)"), floatEntry(&fj.DimpleLength),
	))

	return container.NewVScroll(container.NewVBox(
		jointSection,
		fitSection,
	))
}

func (a *App) buildJointStyleSelector() *widget.Select {
	names := model.JointStyleNames()
	selector := widget.NewSelect(names, func(selected string) {
		for code, name := range names {
			if name == selected {
				a.project.Params.FingerJoint.Style = model.JointStyle(code)
				break
			}
		}
	})
	selector.SetSelected(a.project.Params.FingerJoint.Style.String())
	return selector
}

// ─── Laser Panel ───────────────────────────────────────────

func (a *App) buildLaserPanel() fyne.CanvasObject {
	l := &a.project.Laser

	homeCheck := widget.NewCheck("", func(b bool) { l.HomeFirst = b })
	homeCheck.Checked = l.HomeFirst

	cutSection := widget.NewCard("Cutting", "", container.NewGridWithColumns(2,
		widget.NewLabel("Feed Rate (mm/min)"), floatEntry(&l.FeedRate),
		widget.NewLabel("Laser Power (S value)"), intEntry(&l.LaserPower),
		widget.NewLabel("Passes"), intEntry(&l.LaserPasses),
		widget.NewLabel("Kerf / Burn (mm)"), floatEntry(&a.project.Params.Burn),
	))

	machineSection := widget.NewCard("Machine", "", container.NewGridWithColumns(2,
		widget.NewLabel("GCode Profile"), a.buildProfileSelector(),
		widget.NewLabel("Bed Width (mm)"), floatEntry(&l.BedWidth),
		widget.NewLabel("Bed Height (mm)"), floatEntry(&l.BedHeight),
		widget.NewLabel("Home Before Cutting"), homeCheck,
	))

	packCheck := widget.NewCheck("", func(b bool) { a.project.Params.OptimizeLayout = b })
	packCheck.Checked = a.project.Params.OptimizeLayout

	layoutSection := widget.NewCard("Sheet Layout", "", container.NewGridWithColumns(2,
		widget.NewLabel("Panel Spacing (mm)"), floatEntry(&a.project.Layout.Spacing),
		widget.NewLabel("Shelf-Pack Panels"), packCheck,
	))

	return container.NewVScroll(container.NewVBox(
		cutSection,
		machineSection,
		layoutSection,
	))
}

func (a *App) buildProfileSelector() *widget.Select {
	profileNames := model.GetProfileNames()
	selector := widget.NewSelect(profileNames, func(selected string) {
		a.project.Laser.GCodeProfile = selected
	})
	selector.SetSelected(a.project.Laser.GCodeProfile)
	return selector
}

// ─── Layout Panel ──────────────────────────────────────────

func (a *App) buildLayoutPanel() fyne.CanvasObject {
	a.layoutContainer = container.NewStack(
		widget.NewLabel("No box yet. Set the dimensions, then click Generate."),
	)

	generateBtn := widget.NewButtonWithIcon("Generate", theme.ViewRefreshIcon(), func() {
		a.generateBox()
	})
	generateBtn.Importance = widget.HighImportance

	verifyBtn := widget.NewButton("Verify", func() {
		a.verifyLayout()
	})

	nestBtn := widget.NewButton("Nest to Bed", func() {
		a.showNestedLayout()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Cut Layout", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			nestBtn,
			verifyBtn,
			generateBtn,
		),
		nil, nil, nil,
		a.layoutContainer,
	)
}

func (a *App) refreshResults() {
	if a.layoutContainer == nil {
		return
	}
	a.layoutContainer.RemoveAll()
	a.layoutContainer.Add(widgets.RenderBoxLayout(a.project.Box, a.project.Laser))
	a.layoutContainer.Refresh()
}

// showNestedLayout splits the generated panels onto bed-sized sheets and
// shows one canvas per sheet.
func (a *App) showNestedLayout() {
	box, ok := a.requireBox()
	if !ok {
		return
	}

	result := engine.NestSheets(box.Panels, a.project.Laser, a.project.Layout)

	var items []fyne.CanvasObject
	for _, sheet := range result.Sheets {
		header := widget.NewLabel(fmt.Sprintf(
			"Sheet %d of %d — %d panels",
			sheet.Index+1, len(result.Sheets), len(sheet.Panels),
		))
		header.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items,
			header,
			widgets.NewPanelCanvas(sheet.Panels, a.project.Laser, 600, 400),
			widget.NewSeparator(),
		)
	}

	if len(result.Unplaced) > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d panels are larger than the bed and could not be placed!",
			len(result.Unplaced),
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	a.layoutContainer.RemoveAll()
	a.layoutContainer.Add(container.NewVScroll(container.NewVBox(items...)))
	a.layoutContainer.Refresh()
}

// ─── Toolpath Panel ────────────────────────────────────────

func (a *App) buildToolpathPanel() fyne.CanvasObject {
	a.toolpathContainer = container.NewStack(
		widget.NewLabel("Nothing to preview yet. Generate a box first."),
	)

	refreshBtn := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		a.refreshToolpath()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("GCode Preview", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			refreshBtn,
		),
		nil, nil, nil,
		a.toolpathContainer,
	)
}

func (a *App) refreshToolpath() {
	if a.toolpathContainer == nil {
		return
	}
	a.toolpathContainer.RemoveAll()
	if a.project.Box == nil || len(a.project.Box.Panels) == 0 {
		a.toolpathContainer.Add(widget.NewLabel("Nothing to preview yet. Generate a box first."))
	} else {
		code := gcode.New(a.project.Laser).Generate(a.project.Name, *a.project.Box)
		a.toolpathContainer.Add(widgets.RenderGCodePreview(*a.project.Box, code))
	}
	a.toolpathContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) generateBox() {
	box, err := engine.New(a.project.Layout).Generate(a.project.Params)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.project.Box = &box
	a.refreshResults()
	a.refreshToolpath()
}

// requireBox returns the generated box, prompting when there is none.
func (a *App) requireBox() (model.Box, bool) {
	if a.project.Box == nil || len(a.project.Box.Panels) == 0 {
		dialog.ShowInformation("No box generated",
			"Generate the box first (Tools > Generate Box).", a.window)
		return model.Box{}, false
	}
	return *a.project.Box, true
}

func (a *App) verifyLayout() {
	box, ok := a.requireBox()
	if !ok {
		return
	}

	var problems []string
	problems = append(problems, engine.FormatOverlapWarnings(engine.FindOverlaps(box.Panels))...)
	problems = append(problems, engine.CheckBedFit(box, a.project.Laser)...)

	if len(problems) == 0 {
		dialog.ShowInformation("Verification Passed",
			fmt.Sprintf("%d panels, no overlaps, layout fits the bed.", len(box.Panels)),
			a.window)
		return
	}
	dialog.ShowError(fmt.Errorf("%s", strings.Join(problems, "\n")), a.window)
}

func (a *App) showCompareDialog() {
	results := engine.CompareScenarios(
		engine.BuildDefaultScenarios(a.project.Params, a.project.Layout))

	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Sheet (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Utilization", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Cut (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Panels", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	for _, res := range results {
		grid.Add(widget.NewLabel(res.Scenario.Name))
		if res.Err != nil {
			errLabel := widget.NewLabel("error: " + res.Err.Error())
			errLabel.Importance = widget.DangerImportance
			grid.Add(errLabel)
			grid.Add(widget.NewLabel("-"))
			grid.Add(widget.NewLabel("-"))
			grid.Add(widget.NewLabel("-"))
			continue
		}
		s := res.Stats
		grid.Add(widget.NewLabel(fmt.Sprintf("%.0f x %.0f", s.SheetWidth, s.SheetHeight)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", s.Utilization*100)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.0f", s.CutLength)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", s.PanelCount)))
	}

	d := dialog.NewCustom("Layout Comparison", "Close",
		container.NewVScroll(grid), a.window)
	d.Resize(fyne.NewSize(620, 320))
	d.Show()
}

// ─── History ───────────────────────────────────────────────

func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.project.Params, a.project.Laser, a.project.Layout, label))
}

func (a *App) currentSnapshot() Snapshot {
	return MakeSnapshot(a.project.Params, a.project.Laser, a.project.Layout, "current")
}

func (a *App) undo() {
	snap, ok := a.history.Undo(a.currentSnapshot())
	if !ok {
		return
	}
	a.restoreSnapshot(snap)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(a.currentSnapshot())
	if !ok {
		return
	}
	a.restoreSnapshot(snap)
}

func (a *App) restoreSnapshot(s Snapshot) {
	a.project.Params = s.Params
	a.project.Laser = s.Laser
	a.project.Layout = s.Layout
	a.rebuildSettingsTabs()
}

// ─── Project Files ─────────────────────────────────────────

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.Save(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.recordRecent(path)
	}, a.window)
	d.SetFileName(a.project.Name + project.ProjectExtension)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		proj, err := project.Load(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.pushHistory("Open Project")
		a.project = proj
		a.recordRecent(path)
		a.rebuildSettingsTabs()
		a.refreshResults()
		a.refreshToolpath()
	}, a.window)
	d.Show()
}

func (a *App) recordRecent(path string) {
	a.config.AddRecentProject(path)
	if err := project.RecordRecentProject(project.DefaultConfigPath(), path); err != nil {
		fmt.Printf("Could not record recent project: %v\n", err)
	}
}

// ─── Export Functions ──────────────────────────────────────

// exportBoxFile prompts for a save location and writes the generated box
// through the given exporter.
func (a *App) exportBoxFile(defaultName string, write func(path string, box model.Box) error) {
	box, ok := a.requireBox()
	if !ok {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path, box); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportGCode() {
	box, ok := a.requireBox()
	if !ok {
		return
	}
	code := gcode.New(a.project.Laser).Generate(a.project.Name, box)
	a.saveGCodeFile(code, a.project.Name+".gcode")
}

func (a *App) saveGCodeFile(code, defaultName string) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.ExportGCode(writer.URI().Path(), code); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("GCode saved to %s", writer.URI().Path()), a.window)
		}
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importDXF() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := boximporter.ImportDXF(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result boximporter.ImportResult) {
	// Show errors if any
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	// Show warnings if any
	if len(result.Warnings) > 0 {
		// Just log warnings, don't block
		fmt.Printf("Import warnings: %v\n", result.Warnings)
	}

	// Add imported panels to the current layout
	if len(result.Panels) > 0 {
		if a.project.Box == nil {
			a.project.Box = &model.Box{}
		}
		a.project.Box.Panels = append(a.project.Box.Panels, result.Panels...)
		a.refreshResults()
		a.refreshToolpath()

		// Show success message
		msg := fmt.Sprintf("Successfully imported %d panels.", len(result.Panels))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d entities had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
