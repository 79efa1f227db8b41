// Package cli is the interactive terminal front end of the admin client.
//
// On start it resumes the stored session (or asks for credentials), prints
// the administrator label and the user list, then accepts commands:
//
//	login | logout | me | users (refresh) | select <id>
//	role [<id>] <role> | status [<id>] <active|inactive> | roles | help | exit
//
// Each network action runs exclusively: while one is in flight another is
// rejected with ErrBusy. Outcomes are reported as Notices through a
// NoticeSink; the default sink prints them.
package cli
