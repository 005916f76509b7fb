package nfe_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/mmrconsultoria/portal-os/internal/infrastructure/nfe"
)

const procXML = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35240512345678000199550010000012341000012345" versao="4.00">
      <ide>
        <cMunFG>3550308</cMunFG>
        <natOp>Venda de mercadoria</natOp>
        <mod>55</mod>
        <serie>1</serie>
        <nNF>1234</nNF>
        <dhEmi>2024-05-06T10:15:00-03:00</dhEmi>
        <tpNF>1</tpNF>
      </ide>
      <emit>
        <CNPJ>12345678000199</CNPJ>
        <xNome>Ferramentaria Exemplo LTDA</xNome>
        <enderEmit><UF>SP</UF></enderEmit>
        <IE>123456789</IE>
      </emit>
      <dest>
        <CPF>12345678909</CPF>
        <xNome>Cliente Final</xNome>
      </dest>
      <det nItem="1">
        <prod>
          <cProd>FR-10</cProd>
          <cEAN>SEM GTIN</cEAN>
          <xProd>Fresa 10mm</xProd>
          <NCM>82077010</NCM>
          <CFOP>5102</CFOP>
          <uCom>UN</uCom>
          <qCom>2,0000</qCom>
          <vUnCom>150.50</vUnCom>
          <vProd>301.00</vProd>
          <uTrib>UN</uTrib>
          <qTrib>2.0000</qTrib>
          <vUnTrib>150.50</vUnTrib>
          <indTot>1</indTot>
        </prod>
        <imposto>
          <ICMS><ICMS00><orig>0</orig><CST>00</CST><pICMS>18.00</pICMS></ICMS00></ICMS>
          <PIS><PISAliq><CST>01</CST><pPIS>1.65</pPIS></PISAliq></PIS>
          <COFINS><COFINSAliq><CST>01</CST><pCOFINS>7.60</pCOFINS></COFINSAliq></COFINS>
        </imposto>
      </det>
      <det nItem="2">
        <prod>
          <cProd>AF-01</cProd>
          <xProd>Afiação</xProd>
          <qCom>abc</qCom>
          <vProd>50.00</vProd>
        </prod>
        <imposto>
          <ICMS><ICMSSN102><orig>0</orig><CSOSN>102</CSOSN></ICMSSN102></ICMS>
        </imposto>
      </det>
      <total>
        <ICMSTot>
          <vBC>301.00</vBC>
          <vICMS>54.18</vICMS>
          <vProd>351.00</vProd>
          <vNF>351.00</vNF>
        </ICMSTot>
      </total>
      <transp><modFrete>9</modFrete></transp>
      <pag>
        <detPag><tPag>01</tPag><vPag>300.00</vPag></detPag>
        <detPag><tPag>03</tPag><vPag>51,00</vPag></detPag>
      </pag>
    </infNFe>
  </NFe>
  <protNFe versao="4.00">
    <infProt>
      <cStat>100</cStat>
      <xMotivo>Autorizado o uso da NF-e</xMotivo>
    </infProt>
  </protNFe>
</nfeProc>`

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParse_NfeProcCompleto(t *testing.T) {
	doc, err := nfe.NewParser().Parse([]byte(procXML))
	require.NoError(t, err)

	n := doc.Note
	assert.Equal(t, "35240512345678000199550010000012341000012345", n.Key)
	assert.Equal(t, "55", n.Model)
	assert.Equal(t, "1", n.Series)
	assert.Equal(t, "1234", n.Number)
	assert.Equal(t, "2024-05-06T10:15:00-03:00", n.IssuedAt)
	assert.Equal(t, "SP", n.IssuerState)
	assert.Equal(t, "12345678000199", n.IssuerDoc)
	assert.Equal(t, "12345678909", n.RecipientDoc)
	assert.Equal(t, "", n.RecipientIE)
	assert.True(t, dec("351").Equal(n.Totals.VNF))
	assert.True(t, dec("54.18").Equal(n.Totals.VICMS))
	assert.True(t, n.Totals.VFrete.IsZero())
	assert.Equal(t, "9", n.FreightMode)
	assert.True(t, dec("351").Equal(n.PaymentTotal))
	assert.Equal(t, "100", n.ProtocolStatus)
	assert.Equal(t, "Autorizado o uso da NF-e", n.ProtocolReason)

	require.Len(t, doc.Items, 2)
	it := doc.Items[0]
	assert.Equal(t, n.Key, it.Key)
	assert.Equal(t, "1", it.Number)
	assert.Equal(t, "FR-10", it.ProductCode)
	assert.True(t, dec("2").Equal(it.Quantity))
	assert.Equal(t, "00", it.ICMSCST)
	assert.Equal(t, "0", it.ICMSOrigin)
	assert.True(t, dec("18").Equal(it.ICMSRate))
	assert.Equal(t, "01", it.PISCST)
	assert.True(t, dec("1.65").Equal(it.PISRate))
	assert.True(t, dec("7.6").Equal(it.COFINSRate))

	it2 := doc.Items[1]
	assert.Equal(t, "102", it2.ICMSCST)
	assert.True(t, it2.Quantity.IsZero())
	assert.Equal(t, "", it2.PISCST)
}

func TestParse_NFeSinEnvoltorio(t *testing.T) {
	xml := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe Id="NFe123"><ide><dEmi>2010-01-02</dEmi></ide></infNFe></NFe>`
	doc, err := nfe.NewParser().Parse([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, "123", doc.Note.Key)
	assert.Equal(t, "2010-01-02", doc.Note.IssuedAt)
	assert.Empty(t, doc.Note.ProtocolStatus)
	assert.Empty(t, doc.Items)
}

func TestParse_Latin1(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe Id="NFe9"><emit><xNome>Afiação São José</xNome></emit></infNFe></NFe>`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	doc, err := nfe.NewParser().Parse([]byte(latin1))
	require.NoError(t, err)
	assert.Equal(t, "Afiação São José", doc.Note.IssuerName)
}

func TestParse_Errores(t *testing.T) {
	p := nfe.NewParser()

	_, err := p.Parse([]byte(`<nfeProc><NFe Id=NFe1></NFe></nfeProc>`))
	assert.ErrorIs(t, err, nfe.ErrInvalidXML)
	assert.Equal(t, "XML inválido", err.Error())

	_, err = p.Parse([]byte(`<evento xmlns="http://www.portalfiscal.inf.br/nfe"><infEvento/></evento>`))
	assert.ErrorIs(t, err, nfe.ErrMissingInfNFe)
	assert.Equal(t, "NF-e não encontrada (infNFe ausente)", err.Error())

	// infNFe fuera del namespace oficial
	_, err = p.Parse([]byte(`<NFe><infNFe Id="NFe1"/></NFe>`))
	assert.ErrorIs(t, err, nfe.ErrMissingInfNFe)
}
