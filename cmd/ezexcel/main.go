// Package main provides the ezexcel command line tool.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Descent098/ezexcel/pkg/ezexcel/sheetio"
)

var (
	outputPath string
	pretty     bool
	sheetName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ezexcel",
		Short: "Inspect and convert spreadsheet files",
		Long: `ezexcel reads tabular data (a header row plus data rows) from xlsx and
CSV files, prints it as JSON, and converts between the two formats.`,
	}

	showCmd := &cobra.Command{
		Use:   "show [input file]",
		Short: "Print a spreadsheet's header and rows as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	showCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	showCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	showCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name for xlsx files (default: Sheet1)")

	convertCmd := &cobra.Command{
		Use:   "convert [input file] [output file]",
		Short: "Convert a spreadsheet between xlsx and CSV",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name for xlsx files (default: Sheet1)")

	rootCmd.AddCommand(showCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

func readTable(path string) (*table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	f, err := sheetio.Open(path, sheetio.Read, sheetName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, rows, err := f.ReadTable()
	if err != nil {
		return nil, err
	}
	return &table{Header: header, Rows: rows}, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	t, err := readTable(args[0])
	if err != nil {
		return err
	}

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(t, "", "  ")
	} else {
		jsonData, err = json.Marshal(t)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	t, err := readTable(args[0])
	if err != nil {
		return err
	}
	if t.Header == nil {
		return fmt.Errorf("input has no header row: %s", args[0])
	}

	out, err := sheetio.Open(args[1], sheetio.Create, sheetName)
	if err != nil {
		return err
	}

	rows := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		rows[i] = cells
	}
	if err := out.WriteTable(t.Header, rows); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
