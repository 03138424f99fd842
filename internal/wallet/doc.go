// Package wallet provides the HTTP implementation of domain.WalletClient.
//
// The wallet service is the remote system of record for clients, balances and
// payments. This package offers a typed client for its five operations:
//   - Registering a client (POST /clients/registroCliente).
//   - Recharging a wallet (POST /wallet/recargarBilletera).
//   - Requesting a payment, which yields a session id (POST /wallet/solicitarPago).
//   - Confirming a payment with the emailed token (POST /wallet/confirmarPago).
//   - Checking a balance (GET /wallet/consultarSaldo?documento=&celular=).
//
// Every operation validates its input first and returns without touching the
// network when validation fails. Responses are JSON envelopes
// ({success, message, data, error}) decoded into domain.Result; connection
// failures become NETWORK_ERROR, and bodies that are not envelopes become
// NETWORK_ERROR (non-2xx) or UNKNOWN_ERROR (2xx). No error value ever escapes
// to the caller. All requests accept a context for cancellation and deadlines.
package wallet
