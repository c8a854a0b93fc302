package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"limeal.fr/launchygo-resolver/pkg/game/launcher"
)

var resolveJSON bool

type resolvedLaunch struct {
	Java      string   `json:"java"`
	MainClass string   `json:"mainClass"`
	RunDir    string   `json:"runDir"`
	Classpath []string `json:"classpath"`
	Shortened bool     `json:"shortened"`
	JVM       []string `json:"jvm"`
	Game      []string `json:"game"`
	Loader    string   `json:"loader,omitempty"`
	Version   string   `json:"loaderVersion,omitempty"`
}

func newResolvedLaunch(l *launcher.Launch) resolvedLaunch {
	r := resolvedLaunch{
		Java:      l.Java,
		MainClass: l.MainClass,
		RunDir:    l.RunDir,
		Classpath: l.Classpath.Files,
		Shortened: l.Classpath.Shortened,
		JVM:       l.Arguments.JVM,
		Game:      l.Arguments.Game,
	}
	if l.Loader != nil {
		r.Loader = string(l.Loader.Type())
		r.Version = l.Loader.Version()
	}
	return r
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the launch command without starting the game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrideFromFlags(cmd, &cfg)

		l, err := buildLauncher(cfg)
		if err != nil {
			return err
		}
		launch, err := l.Prepare(cmd.Context())
		if err != nil {
			return err
		}
		defer launch.Close()

		if resolveJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(newResolvedLaunch(launch))
		}
		fmt.Println(strings.Join(launch.Command(), " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addLaunchFlags(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the resolved launch as JSON")
}
