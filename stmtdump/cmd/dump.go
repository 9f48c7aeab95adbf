// Copyright 2024 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/openconfig/yangmodel/build"
	"github.com/openconfig/yangmodel/declared"
	"github.com/openconfig/yangmodel/effective"
	"github.com/openconfig/yangmodel/modeldata"
	"github.com/openconfig/yangmodel/schemaindex"
	"github.com/openconfig/yangmodel/stmt"
	"github.com/openconfig/yangmodel/stmtparse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/protobuf/encoding/prototext"

	log "github.com/golang/glog"
	gpb "github.com/openconfig/gnmi/proto/gnmi"
)

func newDeclaredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "declared [flags] file.yang",
		RunE:  dumpDeclared,
		Short: "Prints the declared statements of a YANG module.",
		Args:  cobra.ExactArgs(1),
	}
}

func newEffectiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "effective [flags] file.yang",
		RunE:  dumpEffective,
		Short: "Prints the effective statements of a YANG module.",
		Args:  cobra.ExactArgs(1),
	}
}

func newPathsCmd() *cobra.Command {
	paths := &cobra.Command{
		Use:   "paths [flags] file.yang...",
		RunE:  dumpPaths,
		Short: "Prints the schema node identifiers of the schema tree nodes of YANG modules.",
		Args:  cobra.MinimumNArgs(1),
	}
	paths.Flags().String("prefix", "", "Only print paths beginning with this prefix.")
	return paths
}

func newModelDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modeldata [flags] file.yang...",
		RunE:  dumpModelData,
		Short: "Prints the gNMI ModelData advertised for YANG modules as a CapabilityResponse.",
		Args:  cobra.MinimumNArgs(1),
	}
}

// loadModule parses the module or submodule in file. Extensions defined
// by the module are registered before its statements are resolved.
func loadModule(file string) (declared.Statement, error) {
	bs, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m, err := stmtparse.NewParser(nil).ParseModule(string(bs), file)
	if err != nil {
		return nil, err
	}
	exts := stmtparse.Extensions(m)
	if len(exts) == 0 {
		return m, nil
	}
	c, err := stmt.NewCatalog(exts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	log.V(1).Infof("%s: registered %d extensions", file, len(exts))
	return stmtparse.NewParser(c).ParseModule(string(bs), file)
}

// buildOptions returns the build options set by flags.
func buildOptions() (build.Options, error) {
	opts := build.Options{Workers: viper.GetInt("workers")}
	if vs := viper.GetString("yang_version"); vs != "" {
		v, err := stmt.ParseVersion(vs)
		if err != nil {
			return build.Options{}, err
		}
		opts.Version = &v
	}
	return opts, nil
}

// buildModules returns the effective trees of the modules in files.
func buildModules(cmd *cobra.Command, files []string) ([]effective.Statement, error) {
	opts, err := buildOptions()
	if err != nil {
		return nil, err
	}
	var mods []effective.Statement
	for _, f := range files {
		d, err := loadModule(f)
		if err != nil {
			return nil, err
		}
		m, err := build.Build(cmd.Context(), d, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		mods = append(mods, m)
	}
	return mods, nil
}

func dumpDeclared(cmd *cobra.Command, args []string) error {
	m, err := loadModule(args[0])
	if err != nil {
		return err
	}
	declared.Print(cmd.OutOrStdout(), m)
	return nil
}

func dumpEffective(cmd *cobra.Command, args []string) error {
	mods, err := buildModules(cmd, args)
	if err != nil {
		return err
	}
	return effective.Print(cmd.OutOrStdout(), mods[0])
}

func dumpPaths(cmd *cobra.Command, args []string) error {
	mods, err := buildModules(cmd, args)
	if err != nil {
		return err
	}
	x, err := schemaindex.New(mods...)
	if err != nil {
		return err
	}
	paths := x.Paths()
	if pre := viper.GetString("prefix"); pre != "" {
		paths = x.PrefixSearch(pre)
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func dumpModelData(cmd *cobra.Command, args []string) error {
	mods, err := buildModules(cmd, args)
	if err != nil {
		return err
	}
	mds, err := modeldata.Find(mods)
	if err != nil {
		return err
	}
	out, err := prototext.MarshalOptions{Multiline: true}.Marshal(&gpb.CapabilityResponse{SupportedModels: mds})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
