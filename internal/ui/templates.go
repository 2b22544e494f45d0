package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// ─── Template Library Dialog ───────────────────────────────

func (a *App) showTemplateManager() {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load templates: %w", err), a.window)
		store = model.NewTemplateStore()
	}

	var d dialog.Dialog
	tmplList := container.NewVBox()
	var refreshList func()

	saveStore := func() {
		if err := project.SaveDefaultTemplates(store); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
		}
	}

	refreshList = func() {
		tmplList.RemoveAll()

		if len(store.Templates) == 0 {
			tmplList.Add(widget.NewLabel("No templates saved. Use \"Save Current\" to create one."))
			return
		}

		header := container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Walls", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Updated", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		tmplList.Add(header)
		tmplList.Add(widget.NewSeparator())

		for i := range store.Templates {
			idx := i
			t := store.Templates[idx]
			row := container.NewGridWithColumns(6,
				widget.NewLabel(t.Name),
				widget.NewLabel(fmt.Sprintf("%.0f x %.0f x %.0f mm", t.Params.X, t.Params.Y, t.Params.H)),
				widget.NewLabel(t.Params.BoxType.String()),
				widget.NewLabel(shortDate(t.UpdatedAt)),
				newIconButtonWithTooltip(theme.ConfirmIcon(), "Apply template", func() {
					a.pushHistory("Apply Template " + t.Name)
					a.project = t.ToProject(a.project.Name)
					a.rebuildSettingsTabs()
					a.refreshResults()
					a.refreshToolpath()
					if d != nil {
						d.Hide()
					}
				}),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete template", func() {
					store.Remove(t.ID)
					saveStore()
					refreshList()
				}),
			)
			tmplList.Add(row)
		}
	}

	refreshList()

	saveCurrentBtn := widget.NewButtonWithIcon("Save Current", theme.ContentAddIcon(), func() {
		a.showSaveTemplateDialog(&store, func() {
			saveStore()
			refreshList()
		})
	})

	toolbar := container.NewHBox(saveCurrentBtn, layout.NewSpacer())

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(tmplList),
	)

	d = dialog.NewCustom("Box Templates", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

// showSaveTemplateDialog captures the current project settings as a named
// template. Saving under an existing name overwrites that template.
func (a *App) showSaveTemplateDialog(store *model.TemplateStore, onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)

	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("What is this template for? (optional)")

	form := dialog.NewForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Template Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := nameEntry.Text
			if name == "" {
				dialog.ShowError(fmt.Errorf("template name cannot be empty"), a.window)
				return
			}
			tmpl := model.NewBoxTemplate(name, descEntry.Text,
				a.project.Params, a.project.Laser, a.project.Layout)
			store.Upsert(tmpl)
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 220))
	form.Show()
}

// shortDate trims an RFC3339 timestamp down to its date part for list display.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
