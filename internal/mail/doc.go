// Package mail is the email collaborator. Outbound, it renders one task
// as a reminder message; inbound, it parses plain-text messages carrying
// a fixed subject marker into task fields and feeds them to the session.
//
// Actual SMTP/IMAP delivery is behind the Transport interface; the
// package ships only an in-memory transport. The engine never sees a
// message: everything is decoded here first.
package mail
