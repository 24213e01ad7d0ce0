/*
Package config manages configuration parsing and validation for preen.

	            +-------------+
	            |   Config    |
	            | (Tools)     |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +----+----+
	|   TOML    | |  YAML   | |   HCL   |
	|  Parser   | | Parser  | | Parser  |
	+-----------+ +---------+ +---------+

🎯 Purpose:
- Defines the formatter and linter tool schema
- Loads and strictly validates configuration files
- Locates the config file by walking up the directory chain
- Provides immutable, validated config to the run orchestrator

🔄 Flow:
1. Locates a config file (or uses an explicit path)
2. Parses format-specific syntax into a raw document
3. Builds typed tool definitions, rejecting unknown keys
4. Applies name defaulting and validation once, at load time

⚡ Key Responsibilities:
- Tool definition schema (Formatter, Linter)
- Strict unknown-key rejection
- Config file discovery (.preen.* and pyproject.toml embedding)
- run_first partitioning helpers

🤝 Collaborators:
- pkg/operation: consumes the validated Config
- pkg/tool: consumes individual tool definitions
*/
package config
