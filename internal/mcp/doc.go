// Package mcp manages devdeck's service registry: named service endpoints
// and the commands that start them, stored as JSON through the host
// adapter's file system.
//
// The registry file has the shape
//
//	{
//	  "services": {
//	    "github": {
//	      "command": "npx",
//	      "args": ["-y", "@modelcontextprotocol/server-github"],
//	      "env": {"GITHUB_TOKEN": "${GITHUB_TOKEN}"}
//	    }
//	  }
//	}
//
// # Forward Compatibility
//
// Both [File] and [Service] preserve unknown JSON fields, so entries written
// by newer tools survive a read-modify-write cycle.
//
// # Failure Handling
//
// A missing or malformed registry file reads as an empty registry. Writes
// that fail are always returned to the caller.
package mcp
