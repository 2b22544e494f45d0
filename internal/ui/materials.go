package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// ─── Material Library Dialog ───────────────────────────────

func (a *App) showMaterialManager() {
	a.loadMaterials()

	matList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		matList.RemoveAll()

		if len(a.materials) == 0 {
			matList.Add(widget.NewLabel("No material presets defined."))
			return
		}

		header := container.NewGridWithColumns(8,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Thickness", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Kerf", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Feed Rate", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Power", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Passes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		matList.Add(header)
		matList.Add(widget.NewSeparator())

		for i := range a.materials {
			idx := i
			m := a.materials[idx]
			row := container.NewGridWithColumns(8,
				widget.NewLabel(m.Name),
				widget.NewLabel(fmt.Sprintf("%.1f mm", m.Thickness)),
				widget.NewLabel(fmt.Sprintf("%.2f mm", m.Burn)),
				widget.NewLabel(fmt.Sprintf("%.0f mm/min", m.FeedRate)),
				widget.NewLabel(fmt.Sprintf("S%d", m.LaserPower)),
				widget.NewLabel(fmt.Sprintf("%d", m.LaserPasses)),
				newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit preset", func() {
					a.showEditMaterialDialog(idx, refreshList)
				}),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete preset", func() {
					a.materials = append(a.materials[:idx], a.materials[idx+1:]...)
					a.saveMaterialLibrary()
					refreshList()
					a.rebuildSettingsTabs()
				}),
			)
			matList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Material", theme.ContentAddIcon(), func() {
		a.showAddMaterialDialog(refreshList)
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importMaterialLibrary(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportMaterialLibrary()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(matList),
	)

	d := dialog.NewCustom("Material Library", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 500))
	d.Show()
}

func (a *App) showAddMaterialDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Material preset name")
	nameEntry.SetText("New Material")

	thicknessEntry := widget.NewEntry()
	thicknessEntry.SetText("3.0")

	burnEntry := widget.NewEntry()
	burnEntry.SetText("0.10")

	feedEntry := widget.NewEntry()
	feedEntry.SetText("400")

	powerEntry := widget.NewEntry()
	powerEntry.SetText("1000")

	passesEntry := widget.NewEntry()
	passesEntry.SetText("1")

	notesEntry := widget.NewEntry()
	notesEntry.SetPlaceHolder("e.g., supplier, grain direction (optional)")

	form := dialog.NewForm("Add Material", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Thickness (mm)", thicknessEntry),
			widget.NewFormItem("Kerf / Burn (mm)", burnEntry),
			widget.NewFormItem("Feed Rate (mm/min)", feedEntry),
			widget.NewFormItem("Laser Power (S value)", powerEntry),
			widget.NewFormItem("Passes", passesEntry),
			widget.NewFormItem("Notes", notesEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			thickness, _ := strconv.ParseFloat(thicknessEntry.Text, 64)
			burn, _ := strconv.ParseFloat(burnEntry.Text, 64)
			feed, _ := strconv.ParseFloat(feedEntry.Text, 64)
			power, _ := strconv.Atoi(powerEntry.Text)
			passes, _ := strconv.Atoi(passesEntry.Text)

			if thickness <= 0 || feed <= 0 {
				dialog.ShowError(fmt.Errorf("thickness and feed rate must be > 0"), a.window)
				return
			}
			if passes <= 0 {
				passes = 1
			}

			preset := model.NewMaterialPreset(nameEntry.Text, thickness, burn, feed, power, passes)
			preset.Notes = notesEntry.Text
			a.materials = append(a.materials, preset)
			a.saveMaterialLibrary()
			onDone()
			a.rebuildSettingsTabs()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 450))
	form.Show()
}

func (a *App) showEditMaterialDialog(idx int, onDone func()) {
	m := a.materials[idx]

	nameEntry := widget.NewEntry()
	nameEntry.SetText(m.Name)

	thicknessEntry := widget.NewEntry()
	thicknessEntry.SetText(fmt.Sprintf("%.2f", m.Thickness))

	burnEntry := widget.NewEntry()
	burnEntry.SetText(fmt.Sprintf("%.2f", m.Burn))

	feedEntry := widget.NewEntry()
	feedEntry.SetText(fmt.Sprintf("%.0f", m.FeedRate))

	powerEntry := widget.NewEntry()
	powerEntry.SetText(fmt.Sprintf("%d", m.LaserPower))

	passesEntry := widget.NewEntry()
	passesEntry.SetText(fmt.Sprintf("%d", m.LaserPasses))

	notesEntry := widget.NewEntry()
	notesEntry.SetText(m.Notes)

	form := dialog.NewForm("Edit Material", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Thickness (mm)", thicknessEntry),
			widget.NewFormItem("Kerf / Burn (mm)", burnEntry),
			widget.NewFormItem("Feed Rate (mm/min)", feedEntry),
			widget.NewFormItem("Laser Power (S value)", powerEntry),
			widget.NewFormItem("Passes", passesEntry),
			widget.NewFormItem("Notes", notesEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			a.materials[idx].Name = nameEntry.Text
			a.materials[idx].Thickness, _ = strconv.ParseFloat(thicknessEntry.Text, 64)
			a.materials[idx].Burn, _ = strconv.ParseFloat(burnEntry.Text, 64)
			a.materials[idx].FeedRate, _ = strconv.ParseFloat(feedEntry.Text, 64)
			a.materials[idx].LaserPower, _ = strconv.Atoi(powerEntry.Text)
			a.materials[idx].LaserPasses, _ = strconv.Atoi(passesEntry.Text)
			a.materials[idx].Notes = notesEntry.Text
			a.saveMaterialLibrary()
			onDone()
			a.rebuildSettingsTabs()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 450))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importMaterialLibrary(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportMaterials(reader.URI().Path(), a.materials)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.materials = merged
		a.saveMaterialLibrary()
		onDone()
		a.rebuildSettingsTabs()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Material library now contains %d presets.", len(a.materials)),
			a.window)
	}, a.window)
}

func (a *App) exportMaterialLibrary() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.ExportMaterials(writer.URI().Path(), a.materials); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Material library exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("materials.json")
	d.Show()
}

// saveMaterialLibrary persists the current material presets to disk.
func (a *App) saveMaterialLibrary() {
	path, err := project.DefaultMaterialsPath()
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to locate material library: %w", err), a.window)
		return
	}
	if err := project.SaveMaterials(path, a.materials); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save materials: %w", err), a.window)
	}
}
