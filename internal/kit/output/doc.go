// Package output provides styled terminal output for the sequel CLI.
//
// # Usage
//
//	output.Success("Built dist/src/main.py")
//	output.Info("Next steps:")
//	output.Step("cd dist && docker build .")
//	output.Warn("no document models found")
//	output.Error("build failed")
//
// # Verbose Mode
//
//	output.SetVerbose(true)
//	output.Verbose("walking src/")
//
// Messages go to stdout by default. Commands redirect them with SetWriter so
// tests can capture what a command printed.
//
//   - Success: 🔥 green bold
//   - Error: ❌ red bold
//   - Warn: ⚠️ yellow
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
