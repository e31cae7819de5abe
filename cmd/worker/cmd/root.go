package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/cmd/setup"
	helperFlag "bitbucket.org/Amartha/go-accounting-landing/internal/common/flag"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/graceful"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/deliveries/job"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "Worker application to run accounting landing jobs",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runJobCmd)

	runJobCmd.Flags().StringP(runJobCmdName, "n", "", "job name")
	runJobCmd.MarkFlagRequired(runJobCmdName)
	runJobCmd.Flags().StringP(runJobCmdVersion, "v", "", "job version")
	runJobCmd.MarkFlagRequired(runJobCmdVersion)
	runJobCmd.Flags().StringP(runJobCmdDate, "d", "", "job running date (YYYY-MM-DD), also the HR payroll period")
	runJobCmd.Flags().StringP(runJobCmdFileName, "f", "", "input file, or input directory for all-landing")
	runJobCmd.Flags().StringP(runJobCmdBucketName, "b", "", "bucket name")
	runJobCmd.Flags().StringP(runJobCmdOutput, "o", "", "output file, or output directory for all-landing")
	runJobCmd.Flags().String(runJobCmdPayrollFile, "", "payroll export file for HR")
	runJobCmd.Flags().String(runJobCmdBatchID, "", "batch id, generated when empty")
	runJobCmd.Flags().Int(runJobCmdLimit, 0, "maximum number of source records, 0 reads all")
	runJobCmd.Flags().Int(runJobCmdThreshold, 0, "error threshold, overrides the configured one")
	runJobCmd.Flags().Int(runJobCmdWorkers, 0, "transform workers, overrides the configured ones")
	runJobCmd.Flags().StringSlice(runJobCmdMovementTypes, nil, "inventory movement types to keep")
	runJobCmd.Flags().String(runJobCmdMode, "", "all-landing mode: parallel or sequential")
	runJobCmd.Flags().Bool(runJobCmdKeepFiles, false, "all-landing keeps the individual files")
	runJobCmd.Flags().StringSlice(runJobCmdSystems, nil, "all-landing source systems (SALE,HR,INV)")
}

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List job name and version",
		Long:  ``,
		Run:   list,
	}
)

func list(ccmd *cobra.Command, args []string) {
	// handlers are never called here
	j := job.New(nil, nil)

	var jobs []string
	for version, l := range j.Routes {
		for name := range l {
			jobs = append(jobs, fmt.Sprintf("version=%s, name=%s", version, name))
		}
	}
	sort.Strings(jobs)

	for _, j := range jobs {
		fmt.Println(j)
	}
}

var (
	runJobCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run execution job",
		Long:    ``,
		Example: "worker run -n={job-name} -v={job-version} -d={job-date} -f={input-file}",
		RunE:    runJob,
	}
	runJobCmdName          = "name"
	runJobCmdVersion       = "version"
	runJobCmdDate          = "date"
	runJobCmdFileName      = "file"
	runJobCmdBucketName    = "bucket"
	runJobCmdOutput        = "output"
	runJobCmdPayrollFile   = "payroll-file"
	runJobCmdBatchID       = "batch-id"
	runJobCmdLimit         = "limit"
	runJobCmdThreshold     = "threshold"
	runJobCmdWorkers       = "workers"
	runJobCmdMovementTypes = "movement-types"
	runJobCmdMode          = "mode"
	runJobCmdKeepFiles     = "keep-files"
	runJobCmdSystems       = "systems"
)

// jobFlag reads the run flags. Threshold stays nil unless given.
func jobFlag(ccmd *cobra.Command) helperFlag.Job {
	flags := ccmd.Flags()

	f := helperFlag.Job{}
	f.JobName, _ = flags.GetString(runJobCmdName)
	f.Version, _ = flags.GetString(runJobCmdVersion)
	f.Date, _ = flags.GetString(runJobCmdDate)
	f.FileName, _ = flags.GetString(runJobCmdFileName)
	f.BucketName, _ = flags.GetString(runJobCmdBucketName)
	f.OutputPath, _ = flags.GetString(runJobCmdOutput)
	f.PayrollFile, _ = flags.GetString(runJobCmdPayrollFile)
	f.BatchID, _ = flags.GetString(runJobCmdBatchID)
	f.Limit, _ = flags.GetInt(runJobCmdLimit)
	f.Workers, _ = flags.GetInt(runJobCmdWorkers)
	f.MovementTypes, _ = flags.GetStringSlice(runJobCmdMovementTypes)
	f.Mode, _ = flags.GetString(runJobCmdMode)
	f.KeepFiles, _ = flags.GetBool(runJobCmdKeepFiles)
	f.Systems, _ = flags.GetStringSlice(runJobCmdSystems)

	if flags.Changed(runJobCmdThreshold) {
		threshold, _ := flags.GetInt(runJobCmdThreshold)
		f.Threshold = &threshold
	}

	return f
}

func runJob(ccmd *cobra.Command, args []string) error {
	var (
		ctx = context.Background()
	)

	s, stoppers, err := setup.Init("job")
	if err != nil {
		timeout := 5 * time.Second
		if s != nil && s.Config.App.GracefulTimeout != 0 {
			timeout = s.Config.App.GracefulTimeout
		}

		graceful.StopProcess(timeout, stoppers...)

		xlog.Fatalf(ctx, "failed to setup app: %v", err)
	}
	defer graceful.StopProcess(s.Config.App.GracefulTimeout, stoppers...)

	ccmd.SilenceUsage = true

	j := job.New(s.Service.Batch, s.Service.Orchestrator)
	if err = j.Start(ctx, jobFlag(ccmd)); err != nil {
		return err
	}

	xlog.Info(ctx, "job server stopped!")
	return nil
}
