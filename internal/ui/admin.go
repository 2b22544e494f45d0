package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// showSettingsDialog displays the application preferences editor. Edits
// land in a copy and only replace the live config on Save.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// GCode profile selector
	profileNames := model.GetProfileNames()
	profileSelect := widget.NewSelect(profileNames, func(selected string) {
		cfg.DefaultGCodeProfile = selected
	})
	profileSelect.SetSelected(cfg.DefaultGCodeProfile)

	// Default material selector
	materialNames := append([]string{"(none)"}, project.MaterialNames(a.loadMaterials())...)
	materialSelect := widget.NewSelect(materialNames, func(selected string) {
		if selected == "(none)" {
			cfg.DefaultMaterial = ""
			return
		}
		cfg.DefaultMaterial = selected
	})
	if cfg.DefaultMaterial == "" {
		materialSelect.SetSelected("(none)")
	} else {
		materialSelect.SetSelected(cfg.DefaultMaterial)
	}

	// Theme selector
	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Auto-Save Interval (min, 0=off)", intEntry(&cfg.AutoSaveInterval)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Thickness (mm)", floatEntry(&cfg.DefaultThickness)),
		widget.NewFormItem("Default Kerf / Burn (mm)", floatEntry(&cfg.DefaultBurn)),
		widget.NewFormItem("Default Feed Rate (mm/min)", floatEntry(&cfg.DefaultFeedRate)),
		widget.NewFormItem("Default Laser Power (S value)", intEntry(&cfg.DefaultLaserPower)),
		widget.NewFormItem("Default Passes", intEntry(&cfg.DefaultLaserPasses)),
		widget.NewFormItem("Default GCode Profile", profileSelect),
		widget.NewFormItem("Default Material", materialSelect),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			a.applyConfigTheme()
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 480))
	d.Show()
}

// showImportExportDialog displays the full-data backup dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()

			templates, err := project.LoadDefaultTemplates()
			if err != nil {
				templates = model.NewTemplateStore()
			}
			backup := project.NewBackupData(a.config, model.CustomProfiles, templates, a.loadMaterials())

			if err := project.ExportAllData(path, backup); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("boxforge-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings, custom profiles,\ntemplates and materials.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					if err := a.applyBackup(backup); err != nil {
						dialog.ShowError(fmt.Errorf("failed to apply imported data: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, custom GCode profiles,\ntemplates and materials) to a backup file, or import from a\npreviously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 280))
	d.Show()
}

// applyBackup installs every store from a backup and persists them.
func (a *App) applyBackup(backup project.BackupData) error {
	a.config = backup.Config
	if err := a.saveConfig(); err != nil {
		return err
	}

	model.CustomProfiles = backup.Profiles
	if err := project.SaveCustomProfilesToDefault(backup.Profiles); err != nil {
		return err
	}

	if err := project.SaveDefaultTemplates(backup.Templates); err != nil {
		return err
	}

	a.materials = backup.Materials
	if path, err := project.DefaultMaterialsPath(); err == nil {
		if err := project.SaveMaterials(path, backup.Materials); err != nil {
			return err
		}
	}

	a.rebuildSettingsTabs()
	return nil
}

// applyConfigTheme installs the theme variant named in the app config.
func (a *App) applyConfigTheme() {
	switch a.config.Theme {
	case "light":
		fyne.CurrentApp().Settings().SetTheme(NewBoxForgeThemeWithVariant(theme.VariantLight))
	case "dark":
		fyne.CurrentApp().Settings().SetTheme(NewBoxForgeThemeWithVariant(theme.VariantDark))
	default:
		fyne.CurrentApp().Settings().SetTheme(NewBoxForgeTheme())
	}
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
