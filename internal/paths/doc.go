// Provides platform-appropriate paths for build artifacts.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS. The tool name "stevedore" is used as the subdirectory under each
// base path. Exported image archives live under the state directory so they
// survive cache cleaning.
package paths
