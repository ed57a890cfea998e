package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nerview/nerview/config"
	"github.com/nerview/nerview/internal"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
	generateKey bool
	selected    string
)

var cmd = &cobra.Command{
	Use:   "nerview",
	Short: "nerview highlights the named entities an analysis service finds in a text",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for nerview's configuration file",
	Example: "nerview json-schema > nerview_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyzes a text and prints its entities",
	Long: "Sends the text to the analysis service and prints it with entities marked " +
		"as [text](LABEL), followed by the entities grouped by label. " +
		"The text is read from stdin when no argument is given.",
	Example: `nerview analyze "Barack Obama was the 44th President of the United States."`,
	RunE:    runAnalyze,
}

func init() {
	cmd.AddCommand(dumpJsonSchemaCmd)
	cmd.AddCommand(analyzeCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
	cmd.PersistentFlags().
		BoolVarP(&generateKey, "generate-token", "g", false, "generate a new JWT token")

	analyzeCmd.Flags().
		StringVarP(&selected, "selected", "s", "", "entity text to mark as selected")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
