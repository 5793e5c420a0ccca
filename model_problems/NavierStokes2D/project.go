package NavierStokes2D

// Project subtracts the pressure gradient from the intermediate velocity in
// place:
//
//	u(i,j) -= dt/rho * (p(i,j) - p(i-1,j)) / h,  0 < i < Nx
//	v(i,j) -= dt/rho * (p(i,j) - p(i,j-1)) / h,  0 < j < Ny
//
// Each gradient is the difference of the two cell centers either side of the
// face, the same difference the divergence is built from. Wall faces see a
// mirrored pressure and are not corrected.
func Project(u UField, v VField, p PField, dt, rho float64) {
	var (
		nx, ny     = p.Nx, p.Ny
		scale      = dt / (rho * p.H)
		uD, vD, pD = u.Data(), v.Data(), p.Data()
		nu         = nx + 1
	)
	if u.Nx != nx+1 || u.Ny != ny || v.Nx != nx || v.Ny != ny+1 {
		panic("velocity and pressure fields do not share a grid")
	}
	for j := 0; j < ny; j++ {
		for i := 1; i < nx; i++ {
			uD[i+j*nu] -= scale * (pD[i+j*nx] - pD[i-1+j*nx])
		}
	}
	for j := 1; j < ny; j++ {
		for i := 0; i < nx; i++ {
			vD[i+j*nx] -= scale * (pD[i+j*nx] - pD[i+(j-1)*nx])
		}
	}
}
