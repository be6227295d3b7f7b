package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var loginTmpl = tmpl(`<h1>Login</h1>

	<form method="post">
		<div class="form-group">
			<label>Email address</label>
			<input class="form-control" type="email" name="email" value="{{ .Email }}" required>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input class="form-control" type="password" name="password" required>
		</div>
		<button type="submit" class="btn btn-primary">Login</button>
	</form>`)

type loginData struct {
	*Route
	Email string
}

func login(w http.ResponseWriter, req *http.Request, r *Route, _ httprouter.Params) error {

	if r.LoggedIn() {
		r.SeeOther("/")
		return nil
	}

	var email string

	if req.Method == http.MethodPost {
		email = req.PostFormValue("email")
		if err := r.Login(email, req.PostFormValue("password")); err == nil {
			r.SeeOther("/")
			return nil
		} else {
			r.Danger(err)
		}
	}

	return loginTmpl.Execute(w, &loginData{
		Route: r,
		Email: email,
	})
}

func logout(w http.ResponseWriter, req *http.Request, r *Route, _ httprouter.Params) error {
	if r.LoggedIn() {
		r.Success("You have been logged out")
		r.Logout()
	}
	r.SeeOther("/")
	return nil
}
