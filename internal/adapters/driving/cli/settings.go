package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage viewer settings",
	Long: `View and change the renderer, zoom, selection and file watch settings
stored in ~/.lasso/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Run 'lasso settings keys' for the available keys.

Examples:
  lasso settings set renderer.backend native
  lasso settings set zoom.step 1.1
  lasso settings set selection.copy_on_release false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runSettingsKeys,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Renderer]")
	cmd.Printf("  Backend: %s\n", settings.Renderer.Backend.Description())
	if settings.Renderer.Backend == domain.RendererPoppler {
		path := settings.Renderer.PopplerPath
		if path == "" {
			path = "(search PATH)"
		}
		cmd.Printf("  Poppler path: %s\n", path)
		cmd.Printf("  Oversample: %dx\n", settings.Renderer.Oversample)
	}
	cmd.Println()

	cmd.Println("[Zoom]")
	cmd.Printf("  Initial: %.0f%%\n", settings.Zoom.Initial*100)
	cmd.Printf("  Step: %g\n", settings.Zoom.Step)
	cmd.Printf("  Range: %.0f%% - %.0f%%\n", settings.Zoom.Min*100, settings.Zoom.Max*100)
	cmd.Println()

	cmd.Println("[Selection]")
	cmd.Printf("  Copy on release: %s\n", yesNo(settings.Selection.CopyOnRelease))
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Reload on change: %s\n", yesNo(settings.Watch.Enabled))
	if settings.Watch.Enabled {
		cmd.Printf("  Interval: %dms\n", settings.Watch.IntervalMs)
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
