// Package commands defines the discount24 CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login / register / logout / status   Manage the vendor session
//   - vendors                              Search, filter and sort the directory
//   - vendors categories                   List categories present in the directory
//   - vendor <id>                          Show one vendor profile
//   - profile update <id>                  Edit your shop profile
//   - menu list|add|edit|rm                Manage menu items
//
// # Implementation
//
// The root command loads configuration, sets up logging and builds the
// dependency graph (token store, session, transport, repositories) before
// any subcommand runs. A rejected session prints a hint to log in again.
package commands
