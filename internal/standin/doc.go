// Package standin is an in-memory marketplace backend used during
// development and by end-to-end tests of the client.
//
// HTTP API
//
//	POST /api/vendors/login { "email", "password" }
//	    Check the credentials and return { "token", "vendor", "message" }.
//
//	POST /api/vendors/register (multipart/form-data)
//	    Fields vendorName, email, shopName, description, location, phone,
//	    category, password and an optional "image" file. Creates the vendor
//	    and returns { "token", "vendor", "message" } with 201.
//
//	GET /api/vendors/
//	    Return every vendor profile.
//
//	PUT /api/vendors/{id}
//	    Apply a partial profile. Only the vendor itself may update it.
//	    Returns { "message", "vendor" }.
//
//	GET /api/vendors/menu/[?vendorId=ID]
//	    Return the menu of ID, or of the signed-in vendor when absent.
//
//	POST /api/vendors/menu/
//	    Add an item to the signed-in vendor's menu and return it with 201.
//
//	PUT /api/vendors/menu/{id}, DELETE /api/vendors/menu/{id}
//	    Replace or delete one of the signed-in vendor's items.
//
//	GET /health, GET /metrics
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Tokens are HS256 JWTs; passwords are stored as bcrypt hashes.
//   - Non-2xx responses carry { "error": "..." }.
//   - Every request is written to the access log and counted in the
//     discount24_standin_* metrics.
package standin
