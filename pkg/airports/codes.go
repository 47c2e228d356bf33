package airports

// IATA codes served by scheduled passenger traffic, grouped by region.
// Entries that collide with common uppercase words are removed at init
// (see stopwords.go).
var regionCodes = map[string]string{
	"north-america-us": `
		ATL LAX ORD DFW DEN JFK SFO SEA LAS MCO EWR CLT PHX IAH MIA BOS MSP FLL
		DTW PHL LGA BWI SLC SAN IAD DCA MDW TPA PDX HNL AUS BNA DAL STL HOU MSY
		RDU SJC SMF SNA OAK MCI CLE IND PIT CMH CVG RSW JAX OGG MKE BDL ONT BUR
		PBI ABQ OMA ANC BUF CHS RIC ORF BOI TUS OKC MEM SDF ELP RNO GEG TUL PVD
		LIH KOA ITO ALB SYR ROC GRR DSM MSN LIT BHM GSP SAV PNS MYR CAE GSO TYS
		CHA HSV XNA ICT LBB AMA MAF CRP HRL MFE BRO SJT ACT TYR GGG SHV LFT LCH
		BTR MOB GPT VPS ECP TLH GNV DAB SRQ PIE MLB EYW PGD SFB AVL ILM OAJ EWN
		CRW HTS LEX CAK DAY TOL FWA SBN LAN AZO FNT MBS TVC MQT GRB ATW CWA DLH
		RST FAR BIS MOT GFK FSD RAP SUX CID DBQ MLI PIA BMI SPI CMI EVV CGI SGF
		COU JLN FSM TXK MLU AEX PIB HBG ABE AVP ERI MDT IPT ACY TTN HPN ISP SWF
		ELM ITH BGM PWM BGR BTV MHT PSM ORH HYA ACK MVY PVC BED EWB PQI BHB RKD
		SBY CHO LYH ROA SHD PHF HGR CKB MGW LWB BLF PKB PSP SBA SBP FAT MRY STS
		ACV RDD MMH SCK LGB EUG MFR RDM OTH PSC YKM ALW PUW LWS BLI FCA MSO BZN
		BIL GTF HLN BTM JAC IDA PIH TWF COD CPR RKS GCC LAR CYS SGU FLG PRC YUM
		GJT ASE EGE HDN MTJ DRO GUC ALS PUB COS FNL ROW HOB SAF FMN BFL IYK VIS
		SMX OXR CLD CRQ IPL BLH EKO ELY CDC PGA GCN IFP LAW SPS ABI GRK CLL BPT
		VCT DRT LRD MHK GCK DDC HYS SLN JBR CGI OWB PAH BWG MGM DHN ABY VLD CSG
		MCN AGS FLO CHS HHH ILM PGV SCE UNV LNS
		FAI JNU KTN SIT BET OME OTZ BRW ADQ CDV YAK WRG PSG DLG AKN SCC ENA
		LNY MKK JHM
		SJU STT STX BQN PSE`,
	"canada": `
		YYZ YVR YUL YYC YEG YOW YWG YHZ YQB YXE YQR YYJ YLW YXX YQM YYT YFC YSJ
		YQY YXU YKF YQT YXS YZF YXY YFB YMM YQL YXJ YCD YKA YQU YGK YTS YAM YSB
		YHM YTZ YZR YQG YPR YWL YCG YXC YDF YYG YQX YZP YPE`,
	"mexico-central-caribbean": `
		MEX CUN GDL MTY TIJ SJD PVR MZT ACA ZIH OAX HUX MID VER BJX QRO SLP AGU
		ZCL TAM TRC CUU HMO LAP LMM CUL CZM CME VSA TGZ TAP ZLO NLU CPE DGO
		GUA SAL TGU SAP RTB LIR SJO PTY MGA BZE FRS
		NAS FPO ELH GGT MBJ KIN POP PUJ SDQ STI LRM AZS PAP CAP HAV VRA SNU CCC
		HOG SCU AUA CUR BON SXM SBH AXA ANU SKB NEV EIS TOV DOM SLU UVF BGI GND
		SVD POS TAB PLS GCM CYB BDA MHH TCB`,
	"south-america": `
		BOG MDE CTG CLO BAQ SMR PEI BGA CUC ADZ LET
		LIM CUZ AQP IQT PIU TRU TCQ JUL PCL
		UIO GYE GPS CUE
		CCS VLN PMV BLA MAR
		LPB VVI CBB SRE
		SCL PMC PUQ IPC ANF IQQ CJC CCP ARI ZCO LSC
		EZE AEP COR MDZ BRC IGR USH FTE SLA TUC NQN BHI CRD RES JUJ
		MVD PDP ASU
		GRU GIG CGH SDU BSB CNF SSA REC FOR POA CWB FLN BEL MAO NAT MCZ VIX GYN
		CGB IGU CGR SLZ JPA AJU PMW FEN PNZ VCP NVT JOI IOS LDB MGF PVH RBR BVB
		MCP STM IMP
		GEO PBM CAY`,
	"europe-west": `
		LHR LGW STN LTN LCY SEN MAN BHX EDI GLA ABZ INV BRS NCL LPL EMA LBA BFS
		BHD SOU EXT NWI CWL JER GCI IOM BOH NQY LSI KOI SYY MME DND
		DUB ORK SNN NOC KIR
		CDG ORY NCE LYS MRS TLS BOD NTE BIQ MPL BES LIL SXB BVA RNS CFE AJA BIA
		FSC PGF PUF LRH TLN BZR CCF EGC FNI PIS LDE RDZ
		BRU CRL ANR OST LGG AMS EIN RTM GRQ MST LUX
		FRA MUC BER DUS HAM STR CGN HAJ NUE LEJ DRS BRE DTM FMM FKB HHN PAD NRN
		SCN FDH GWT ERF
		ZRH GVA BSL BRN LUG VIE SZG INN GRZ LNZ KLU
		FCO CIA MXP LIN BGY VCE TSF NAP CTA PMO BLQ FLR PSA TRN GOA BRI BDS SUF
		CAG OLB AHO TRS VRN REG PEG AOI TPS CIY CRV PSR
		MAD BCN PMI AGP ALC VLC SVQ BIO IBZ MAH TFS TFN LPA ACE FUE SPC GMZ VDE
		SCQ VGO LCG OVD SDR XRY GRX LEI REU GRO VLL EAS SLM RMU
		LIS OPO FAO FNC PDL TER PXO HOR`,
	"europe-north-east": `
		CPH BLL AAL AAR ARN GOT BMA MMX LLA UME OSL BGO TRD SVG TOS BOO AES KRS
		TRF HAU KRN VBY
		HEL OUL RVN TMP TKU VAA KTT JOE KEF RKV AEY
		RIX TLL VNO KUN
		WAW WMI KRK GDN WRO POZ KTW RZE LUZ SZZ BZG LCJ
		PRG BRQ OSR BTS KSC BUD DEB
		OTP CLJ TSR IAS SBZ SUJ CND
		SOF VAR BOJ
		BEG NIS INI ZAG SPU DBV ZAD PUY RJK OSI LJU SJJ TZL OMO TGD TIV TIA SKP
		OHD PRN KIV
		LWO IEV KBP ODS HRK MSQ`,
	"mediterranean-turkey": `
		ATH SKG HER CHQ RHO CFU JMK JTR KGS ZTH EFL KLX PVK MJT SMI KVA
		MLA LCA PFO ECN
		IST SAW ESB ADB AYT DLM BJV ADA TZX GZT ERZ VAN ASR DIY KYA SZF`,
	"russia-caucasus-central-asia": `
		SVO DME VKO LED AER KRR ROV KZN UFA SVX OVB KJA IKT VVO KHV GOJ MRV KGD
		MMK PEE KUF CEK OMS TJM SGC
		TBS BUS KUT EVN GYD
		ALA NQZ CIT AKX GUW KGF
		TAS SKD BHK UGC FRU OSS DYU ASB`,
	"middle-east": `
		DXB AUH SHJ DWC RKT DOH BAH KWI MCT SLL
		RUH JED DMM MED AHB TIF TUU GIZ ELQ YNB ABT
		AMM AQJ TLV ETH BEY DAM ALP BGW BSR EBL ISU NJF
		THR IKA MHD SYZ IFN TBZ KIH AWZ BND`,
	"africa": `
		CAI HRG SSH LXR ASW HBE RMF TUN DJE MIR NBE ALG ORN CZL TLM
		CMN RAK AGA FEZ TNG RBA OUD NDR ESU TTU
		LAD ADD NBO MBA KIS JRO ZNZ DAR ARK EBB KGL BJM
		DKR DSS ABJ ACC KMS LOS ABV PHC KAN ENU QOW CBQ DLA NSI LBV SSG
		FIH FKI BZV
		JNB CPT DUR PLZ ELS BFN GRJ MQP HLA WDH WVB GBE MUB BUQ HRE VFA LUN LVI
		NLA MPM BEW TNR NOS MRU SEZ PRI RUN DZA HAH
		BKO NIM OUA ROB FNA CKY BJL NKC OXB RAI SID BVC
		TMS KRT PZU JUB MGQ JIB ASM TIP BEN MJI`,
	"south-asia": `
		DEL BOM BLR MAA CCU HYD COK AMD GOI GOX PNQ TRV JAI LKO ATQ IXC SXR IXB
		GAU PAT BBI VNS NAG IDR IXE CCJ TRZ IXM IXZ VTZ BDQ STV RPR UDR IXJ DED
		IXL IXR GAY
		KHI LHE ISB PEW MUX SKT UET
		CMB HRI MLE GAN KTM PKR BWA DAC CGP ZYL PBH`,
	"east-asia": `
		PEK PKX PVG SHA SZX CTU TFU CKG KMG XIY HGH XMN NKG WUH CSX TAO DLC SHE
		HRB TSN TYN CGO HAK SYX KWL NNG KWE FOC LHW URC INC HET NGB WNZ SJW HFE
		JJN YNT LXA XNN KHN JHG DYG
		HKG MFM TPE KHH RMQ TNN
		NRT HND KIX ITM NGO FUK CTS OKA SDJ KOJ HIJ KMQ OIT KMJ NGS AOJ AKJ HKD
		MYJ TAK UKB KCZ ISG MMY OKJ TOY
		ICN GMP PUS CJU TAE KWJ CJJ
		ULN`,
	"southeast-asia": `
		BKK DMK HKT CNX CEI KBV USM HDY UTP UTH
		SIN KUL SZB PEN LGK BKI KCH MYY JHB KBR IPH TWU SDK
		CGK HLP DPS SUB KNO UPG JOG YIA BPN PDG PLM PKU BTH LOP SOC SRG BDO MDC
		AMQ DJJ BTJ
		MNL CEB DVO CRK ILO KLO BCD PPS ZAM MPH GES
		SGN HAN DAD CXR PQC HPH HUI VII DLI VCA
		REP PNH KOS VTE LPQ RGN MDL NYU BWN DIL`,
	"oceania-pacific": `
		SYD MEL BNE ADL CBR OOL CNS HBA DRW TSV LST MCY AYQ BME KTA ASP ROK PPP
		MKY NTL AVV HTI KGI ABX WGA
		AKL WLG CHC ZQN DUD NSN NPE NPL PMR ROT TRG HLZ IVC BHE
		NAN SUV APW PPT BOB RAR NOU VLI POM LAE GUM SPN TRW MAJ KSA PNI ROR CXI
		TBU HIR FUN`,
}
