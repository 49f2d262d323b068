package utils

func FormatZipCode(zip string) string {
	d := OnlyDigits(zip)
	if len(d) != 8 {
		return zip
	}
	return d[:5] + "-" + d[5:]
}

// FormatPhone renders 10 or 11 digit numbers as (XX) XXXX-XXXX or
// (XX) XXXXX-XXXX. Anything else is returned untouched.
func FormatPhone(phone string) string {
	d := OnlyDigits(phone)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	default:
		return phone
	}
}

func FormatCPF(cpf string) string {
	d := OnlyDigits(cpf)
	if len(d) != 11 {
		return cpf
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

func FormatCNPJ(cnpj string) string {
	d := OnlyDigits(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}
