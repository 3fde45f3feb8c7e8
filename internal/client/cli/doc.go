// Package cli is the photodrop command-line client.
//
// Commands:
//
//	photodrop signup | login | logout | whoami
//	photodrop sync <page-url>
//	photodrop upload <file> [--page-url URL | --direct]
//	photodrop photos | history
//
// Every command loads the configuration, opens the local session database
// and talks to the server through the HTTP client. Status lines are written
// through view.Printer.
package cli
