// Package main runs an in-memory wallet service for local development and
// tests. It implements the five endpoints the front end calls, answering
// with the {success, message, data, error} envelope.
//
// HTTP API
//
//	POST /clients/registroCliente {documento, nombres, email, celular}
//	    Register a client with a zero balance. A documento can register once.
//
//	POST /wallet/recargarBilletera {documento, celular, valor}
//	    Credit valor to the wallet whose documento and celular match.
//
//	POST /wallet/solicitarPago {documento, celular, valor}
//	    Open a payment session if the balance covers valor and answer with its
//	    sessionId. A random 6-digit token is generated and logged, standing in
//	    for the email a real service would send.
//
//	POST /wallet/confirmarPago {sessionId, token}
//	    Debit the session's valor when the token matches. Sessions expire after
//	    ten minutes and are consumed by a successful confirmation.
//
//	GET /wallet/consultarSaldo?documento=&celular=
//	    Return {saldo}. celular is optional; when given it must match.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Amounts are JSON numbers.
//   - Every request is access-logged with method, path, status and duration.
//   - The default listen address is :8080.
package main
