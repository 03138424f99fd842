// Package web serves the browser front end.
//
// Pages are rendered on the server from html/template and every form posts
// back to the server, which runs the matching view controller and redirects
// to the page again (post/redirect/get). Each browser gets its own set of
// controllers, looked up by a uuid carried in a sealed cookie, so two tabs of
// the same browser share one payment flow while two browsers never do.
//
// Routes
//
//	GET  /                 303 to /registro
//	GET  /registro         registration form
//	POST /registro         register a client
//	GET  /recarga          recharge form
//	POST /recarga          recharge a wallet
//	GET  /pago             payment request or confirmation step
//	POST /pago/solicitar   request a payment
//	POST /pago/confirmar   confirm with the token
//	POST /pago/atras       back to the request step
//	GET  /saldo            balance form and last balance
//	POST /saldo            query a balance
//	GET  /healthz          liveness
package web
