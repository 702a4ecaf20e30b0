// Package info implements the 'skeinctl info' sub command.
package info

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	hoststat "github.com/likexian/host-stat-go"
	"github.com/spf13/cobra"
)

var infoExample = heredoc.Doc(`
	# Print the host information
	skeinctl info`)

// Info collects the host facts printed by the 'info' sub command.
type Info struct {
	HostName  string
	OSRelease string
	CPUCore   uint64
	MemTotal  string
	MemFree   string
}

// NewCmdInfo returns the 'info' sub command.
func NewCmdInfo() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "info",
		DisableFlagsInUseLine: true,
		Short:                 "Print the host information",
		Long:                  "Print the host information.",
		Example:               infoExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	return cmd
}

func run(cmd *cobra.Command) error {
	var info Info

	hostInfo, err := hoststat.GetHostInfo()
	if err != nil {
		return fmt.Errorf("get host info failed!error:%w", err)
	}

	info.HostName = hostInfo.HostName
	info.OSRelease = hostInfo.Release + " " + hostInfo.OSBit

	memStat, err := hoststat.GetMemStat()
	if err != nil {
		return fmt.Errorf("get mem stat failed!error:%w", err)
	}

	info.MemTotal = strconv.FormatUint(memStat.MemTotal, 10) + "M"
	info.MemFree = strconv.FormatUint(memStat.MemFree, 10) + "M"

	cpuStat, err := hoststat.GetCPUInfo()
	if err != nil {
		return fmt.Errorf("get cpu stat failed!error:%w", err)
	}

	info.CPUCore = cpuStat.CoreCount

	s := reflect.ValueOf(&info).Elem()
	typeOfInfo := s.Type()

	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)

		v := fmt.Sprintf("%v", f.Interface())
		if v != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%12s %v\n", typeOfInfo.Field(i).Name+":", f.Interface())
		}
	}

	return nil
}
